package trustservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с TrustService.
// TrustService ведет рейтинг надежности клиентов; отмена бронирования
// клиентом снижает рейтинг.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента TrustService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// DecrementOnCancel снижает trust score пользователя после отмены бронирования
func (c *Client) DecrementOnCancel(ctx context.Context, userID int64) (*TrustScore, error) {
	url := fmt.Sprintf("%s/internal/users/%d/trust/decrement", c.baseURL, userID)

	body, err := json.Marshal(decrementRequest{Reason: "booking_cancelled"})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	// Парсим ответ
	var score TrustScore
	if err := json.NewDecoder(resp.Body).Decode(&score); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &score, nil
}

// DecrementOnCancelWithGracefulDegradation снижает trust score с graceful degradation.
// При недоступности TrustService возвращает ErrServiceDegraded: отмена бронирования
// не должна падать из-за внешнего сервиса, снижение рейтинга в этом случае теряется.
func (c *Client) DecrementOnCancelWithGracefulDegradation(ctx context.Context, userID int64) (*TrustScore, error) {
	c.log.Info("Decrementing trust score for user_id=%d", userID)

	score, err := c.DecrementOnCancel(ctx, userID)
	if err != nil {
		// Бизнес-ошибку пробрасываем дальше
		if err == ErrUserNotFound {
			c.log.Warn("No trust record found for user_id=%d", userID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("TrustService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	c.log.Info("Trust score decremented for user_id=%d, score=%d", userID, score.Score)
	return score, nil
}
