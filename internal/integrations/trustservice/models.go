package trustservice

// TrustScore модель рейтинга надежности пользователя из TrustService
type TrustScore struct {
	UserID int64 `json:"user_id"`
	Score  int   `json:"score"`
}

// decrementRequest тело запроса на снижение рейтинга
type decrementRequest struct {
	Reason string `json:"reason"`
}

// ErrorResponse модель ошибки от TrustService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
