package get_occupied_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	salonRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/salon"
	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

// UseCase use case получения занятости слотов на дату.
// Чтение без блокировок и транзакций: клиент опрашивает его раз в несколько
// секунд, пока пользователь выбирает слот. Результат используется только
// для отрисовки, решение о допуске принимает place_booking.
type UseCase struct {
	bookingRepo BookingRepository
	salonRepo   SalonRepository
	catalog     []types.TimeString
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	grid domain.SlotGrid,
	logger Logger,
) *UseCase {
	// Сетка не зависит от салона и даты, каталог строим один раз
	catalog, err := grid.GenerateSlots()
	if err != nil {
		logger.Error("GetOccupiedSlots: invalid slot grid: %v", err)
	}

	return &UseCase{
		bookingRepo: bookingRepo,
		salonRepo:   salonRepo,
		catalog:     catalog,
		logger:      logger,
	}
}

// Execute выполняет use case получения занятости слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetOccupiedSlots: salon=%d, date=%s",
		req.SalonID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetOccupiedSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование салона
	if _, err := uc.salonRepo.GetByID(ctx, req.SalonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetOccupiedSlots: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetOccupiedSlots: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Каталог слотов предвычислен при создании use case
	catalog := uc.catalog
	if len(catalog) == 0 {
		uc.logger.Error("GetOccupiedSlots: slot catalog is empty")
		return nil, fmt.Errorf("%w: slot catalog is empty", ErrInternal)
	}

	// 4. Читаем времена активных бронирований
	occupiedTimes, err := uc.bookingRepo.GetOccupiedTimes(ctx, req.SalonID, req.Date)
	if err != nil {
		uc.logger.Error("GetOccupiedSlots: failed to get occupied times: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied times: %v", ErrInternal, err)
	}

	occupied := make(map[types.TimeString]bool, len(occupiedTimes))
	for _, t := range occupiedTimes {
		occupied[t] = true
	}

	// 5. Проецируем занятость на сетку
	slots := make([]Slot, len(catalog))
	for i, t := range catalog {
		display, err := t.Format12Hour()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to format slot time: %v", ErrInternal, err)
		}
		slots[i] = Slot{
			Time:     t,
			Display:  display,
			Occupied: occupied[t],
		}
	}

	resp := &Response{
		SalonID: req.SalonID,
		Date:    req.Date,
		Slots:   slots,
	}

	// 6. Детерминированный фолбэк для занятого выбранного слота
	if req.Selected != nil && occupied[*req.Selected] {
		if free, ok := domain.FirstFreeSlot(catalog, occupied); ok {
			resp.SuggestedTime = &free
		}
		// Свободных нет — SuggestedTime остается nil, клиент снимает выбор
	}

	uc.logger.Info("GetOccupiedSlots: salon=%d, date=%s, occupied=%d/%d",
		req.SalonID, req.Date.Format(domain.DateFormat), len(occupiedTimes), len(catalog))

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Selected != nil {
		if err := req.Selected.Validate(); err != nil {
			return fmt.Errorf("%w: invalid selected time: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
