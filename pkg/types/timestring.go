package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда вычисленное время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time out of day range")
)

// TimeString время суток в wire-формате "HH:MM" (секунды отбрасываются).
// Используется для booking_time: сравнения и арифметика работают в минутах,
// без привязки к дате и часовому поясу.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит строку "HH:MM" или "HH:MM:SS" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	h, m, err := parseHourMinute(s)
	if err != nil {
		return "", err
	}
	return TimeString(fmt.Sprintf("%02d:%02d", h, m)), nil
}

// String возвращает wire-формат "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что значение является корректным временем суток
func (t TimeString) Validate() error {
	_, _, err := parseHourMinute(string(t))
	return err
}

// Minutes возвращает время как количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	h, m, err := parseHourMinute(string(t))
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед.
// Переход через полночь считается ошибкой: слоты не пересекают границу суток.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, t, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// Format12Hour конвертирует wire-формат в 12-часовой формат отображения,
// например "17:30" -> "5:30 PM", "00:15" -> "12:15 AM".
// Конвертация обратима: ParseTime12(t.Format12Hour()) == t для любого
// корректного значения.
func (t TimeString) Format12Hour() (string, error) {
	h, m, err := parseHourMinute(string(t))
	if err != nil {
		return "", err
	}

	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}

	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", h12, m, suffix), nil
}

// ParseTime12 парсит 12-часовой формат отображения ("5:30 PM") в TimeString
func ParseTime12(s string) (TimeString, error) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	suffix := strings.ToUpper(parts[1])
	if suffix != "AM" && suffix != "PM" {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	h, err := strconv.Atoi(hm[0])
	if err != nil || h < 1 || h > 12 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	m, err := strconv.Atoi(hm[1])
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	if suffix == "PM" && h != 12 {
		h += 12
	}
	if suffix == "AM" && h == 12 {
		h = 0
	}

	return TimeString(fmt.Sprintf("%02d:%02d", h, m)), nil
}

// Scan реализует sql.Scanner: Postgres возвращает колонку time как "HH:MM:SS"
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// parseHourMinute разбирает "HH:MM" или "HH:MM:SS", секунды игнорируются
func parseHourMinute(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return h, m, nil
}
