package place_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	bookingRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/salon"
	serviceRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/service"
)

// UseCase use case создания бронирования — единственная точка, где решается,
// допустимо ли бронирование. Проверка даты, лимита и занятости слота вместе
// со вставкой выполняются в одной сериализуемой транзакции: два клиента,
// одновременно бронирующие один слот, не могут пройти проверку оба.
type UseCase struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	slotIndex    domain.SlotIndex
	maxActive    int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	grid domain.SlotGrid,
	maxActive int,
	logger Logger,
) *UseCase {
	// Индекс слотов строим один раз при создании. Невалидная сетка дает
	// nil-индекс: любое время будет отклонено как лежащее вне сетки.
	slotIndex, err := grid.Index()
	if err != nil {
		logger.Error("PlaceBooking: invalid slot grid: %v", err)
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		slotIndex:    slotIndex,
		maxActive:    maxActive,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Порядок проверок внутри транзакции фиксирован: дата, лимит пользователя,
// занятость слота. SlotTaken при гонке может также прийти из уникального
// индекса при вставке — наружу в обоих случаях уходит ErrSlotTaken.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PlaceBooking: user=%d, salon=%d, service=%d, date=%s, time=%s",
		req.UserID, req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PlaceBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Время слота должно лежать на сетке
	if !uc.slotIndex.Contains(req.StartTime) {
		uc.logger.Warn("PlaceBooking: time %s is off the slot grid", req.StartTime)
		return nil, ErrInvalidTimeSlot
	}

	// 3. Проверяем существование салона
	if _, err := uc.salonRepo.GetByID(ctx, req.SalonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("PlaceBooking: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("PlaceBooking: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Разрешаем услугу (с фолбэком на дефолтный набор)
	service := uc.resolveService(ctx, req.SalonID, req.ServiceID)

	now := uc.timeProvider.Now()

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Атомарный блок: проверки и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Дата не в прошлом
		if isDateInPast(req.Date, now) {
			uc.logger.Warn("PlaceBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
			return ErrInvalidDate
		}

		// 5.2. Лимит активных бронирований пользователя (FOR UPDATE)
		activeCount, err := uc.bookingRepo.CountActiveByUser(txCtx, req.UserID)
		if err != nil {
			uc.logger.Error("PlaceBooking: failed to count active bookings: %v", err)
			return fmt.Errorf("%w: failed to count active bookings: %v", ErrInternal, err)
		}

		if activeCount >= uc.maxActive {
			uc.logger.Warn("PlaceBooking: user=%d has %d/%d active bookings",
				req.UserID, activeCount, uc.maxActive)
			return ErrBookingLimitExceeded
		}

		// 5.3. Слот не занят активным бронированием (FOR UPDATE)
		existing, err := uc.bookingRepo.GetActiveBySlot(txCtx, req.SalonID, req.Date, req.StartTime)
		if err != nil {
			uc.logger.Error("PlaceBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		if len(existing) > 0 {
			uc.logger.Warn("PlaceBooking: slot %s %s already taken at salon=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, req.SalonID)
			return ErrSlotTaken
		}

		// 5.4. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			UserID:        req.UserID,
			SalonID:       req.SalonID,
			ServiceID:     req.ServiceID,
			BookingDate:   req.Date,
			BookingTime:   req.StartTime,
			Status:        domain.StatusUpcoming,
			PaymentStatus: domain.PaymentPending,
			PaymentMethod: domain.PayAtSalon,
			ServiceName:   service.Name,
			ServicePrice:  service.Price,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				// Гонку поймал уникальный индекс
				return ErrSlotTaken
			}
			uc.logger.Error("PlaceBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("PlaceBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		SalonID:       result.SalonID,
		ServiceID:     result.ServiceID,
		Date:          result.BookingDate,
		StartTime:     result.BookingTime,
		Status:        string(result.Status),
		PaymentStatus: string(result.PaymentStatus),
		PaymentMethod: string(result.PaymentMethod),
		ServiceName:   result.ServiceName,
		ServicePrice:  result.ServicePrice,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// resolveService возвращает услугу для штампа в бронирование.
// Ссылка на услугу может не существовать в хранилище (салон без собственных
// услуг показывает клиенту дефолтный набор) — в этом случае подставляется
// известная дефолтная запись, бронирование не блокируется.
func (uc *UseCase) resolveService(ctx context.Context, salonID, serviceID int64) *domain.Service {
	if serviceID > 0 {
		svc, err := uc.serviceRepo.GetByID(ctx, salonID, serviceID)
		if err == nil {
			return svc
		}
		if !errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Error("PlaceBooking: failed to get service id=%d: %v", serviceID, err)
		}
	}

	defaults := domain.DefaultServices(salonID)
	for _, svc := range defaults {
		if svc.ID == serviceID {
			return svc
		}
	}

	uc.logger.Warn("PlaceBooking: service id=%d not found, stamping default %q", serviceID, defaults[0].Name)
	return defaults[0]
}
