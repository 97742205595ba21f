package place_booking

import (
	"errors"
	"net/http"

	"github.com/salonbook/SalonBook-BookingService/internal/api/handlers"
	"github.com/salonbook/SalonBook-BookingService/internal/api/middleware"
	placeBooking "github.com/salonbook/SalonBook-BookingService/internal/usecase/place_booking"
	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

func isTimeParseError(err error) bool {
	return errors.Is(err, types.ErrInvalidTimeFormat) || errors.Is(err, types.ErrTimeOutOfRange)
}

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidDate          = "invalid booking date, expected YYYY-MM-DD"
	msgInvalidTime          = "invalid booking time, expected HH:MM"
	msgSalonNotFound        = "salon not found"
	msgDateInPast           = "booking date is in the past"
	msgInvalidTimeSlot      = "booking time is not an available time slot"
	msgBookingLimitExceeded = "you already have the maximum number of upcoming bookings"
	msgSlotTaken            = "this time slot has just been taken, please pick another one"
	msgUnauthorized         = "authentication required"
)

type Handler struct {
	useCase PlaceBookingUseCase
	logger  Logger
}

func NewHandler(useCase PlaceBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req PlaceBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if req.BookingTime != "" && isTimeParseError(err) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, placeBooking.ErrSalonNotFound):
			h.logger.Warn("POST /bookings - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, placeBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in past: user_id=%d, salon_id=%d, date=%s",
				userID, req.SalonID, req.BookingDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, placeBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Time not on slot grid: user_id=%d, time=%s", userID, req.BookingTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, placeBooking.ErrBookingLimitExceeded):
			h.logger.Warn("POST /bookings - Booking limit exceeded: user_id=%d", userID)
			handlers.RespondConflict(w, msgBookingLimitExceeded)

		case errors.Is(err, placeBooking.ErrSlotTaken):
			// Штатный исход гонки двух клиентов за один слот
			h.logger.Info("POST /bookings - Slot taken: salon_id=%d, date=%s, time=%s",
				req.SalonID, req.BookingDate, req.BookingTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, placeBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to place booking: user_id=%d, salon_id=%d, error=%v",
				userID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking placed: booking_id=%d, user_id=%d, salon_id=%d, date=%s, time=%s",
		result.ID, userID, req.SalonID, req.BookingDate, req.BookingTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
