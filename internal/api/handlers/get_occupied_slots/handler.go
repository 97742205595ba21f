package get_occupied_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/salonbook/SalonBook-BookingService/internal/api/handlers"
	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	getOccupiedSlots "github.com/salonbook/SalonBook-BookingService/internal/usecase/get_occupied_slots"
	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

const (
	msgInvalidSalonID  = "invalid salon id"
	msgInvalidDate     = "invalid date, expected YYYY-MM-DD"
	msgInvalidSelected = "invalid selected time, expected HH:MM"
	msgSalonNotFound   = "salon not found"
)

type Handler struct {
	useCase GetOccupiedSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetOccupiedSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{id}/occupied-slots?date=YYYY-MM-DD&selected=HH:MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/occupied-slots - Invalid salon id: %s", vars["id"])
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Дата обязательна
	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /salons/{id}/occupied-slots - Invalid date: %s", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getOccupiedSlots.Request{
		SalonID: salonID,
		Date:    date,
	}

	// Слот, выбранный клиентом в UI (опционально): если он занят,
	// ответ подскажет первый свободный.
	if raw := r.URL.Query().Get("selected"); raw != "" {
		selected, err := types.NewTimeStringFromString(raw)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/occupied-slots - Invalid selected time: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidSelected)
			return
		}
		req.Selected = &selected
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getOccupiedSlots.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/occupied-slots - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getOccupiedSlots.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/occupied-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /salons/{id}/occupied-slots - Failed: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
