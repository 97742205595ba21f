package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	bookingRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/salon"
	"github.com/salonbook/SalonBook-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований: чтение, отмена, завершение.
// Создание бронирований живет отдельно в usecase place_booking — там
// транзакционный админ-контроль. Все переходы статусов проходят через
// domain.CanTransition.
type Service struct {
	bookingRepo BookingRepository
	salonRepo   SalonRepository
	trustClient TrustServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	trustClient TrustServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		salonRepo:   salonRepo,
		trustClient: trustClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно владельцу бронирования и владельцу салона.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Пользователь видит только собственные бронирования.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d requested bookings of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSalonBookings получает бронирования салона (лента для дашборда владельца).
// Доступно только владельцу салона. Поддерживает фильтрацию по дате и статусу.
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetSalonBookings: fetching bookings for salon=%d, user=%d", req.SalonID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: successfully fetched %d bookings for salon=%d", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование.
// Клиент может отменить только свое бронирование, при этом его trust score
// снижается. Владелец салона может отменить любое бронирование своего салона
// без снижения рейтинга клиента.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if !booking.CanBeCancelled() || !domain.CanTransition(booking.Status, domain.StatusCancelled) {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Отмена клиентом или владельцем салона
	cancelledByCustomer := booking.UserID == req.UserID
	if !cancelledByCustomer {
		if err := s.checkOwnerAccess(ctx, booking.SalonID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		// Параллельный запрос успел перевести бронирование в терминальный
		// статус между нашим чтением и обновлением
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: booking id=%d changed status concurrently", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Снижение trust score — только при отмене клиентом.
	// Ошибка TrustService не откатывает отмену: клиент уже увидел результат.
	if cancelledByCustomer {
		if _, err := s.trustClient.DecrementOnCancelWithGracefulDegradation(ctx, booking.UserID); err != nil {
			s.logger.Warn("Cancel: trust score not decremented for user=%d: %v", booking.UserID, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Complete завершает бронирование (чек-ин клиента в салоне, QR или вручную).
// Доступно только владельцу салона. Повторное завершение возвращает
// ErrAlreadyCompleted, завершение отмененного или no-show — ErrCannotComplete.
func (s *Service) Complete(ctx context.Context, bookingID int64, req *models.CompleteBookingRequest) error {
	s.logger.Info("Complete: completing booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, "Complete", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(ctx, booking.SalonID, req.UserID); err != nil {
		s.logger.Warn("Complete: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return err
	}

	if booking.Status == domain.StatusCompleted {
		s.logger.Warn("Complete: booking id=%d is already completed", bookingID)
		return ErrAlreadyCompleted
	}

	if !domain.CanTransition(booking.Status, domain.StatusCompleted) {
		s.logger.Warn("Complete: booking id=%d cannot be completed, status=%s", bookingID, booking.Status)
		return ErrCannotComplete
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCompleted); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Гонка с параллельным запросом: перечитываем и отвечаем так,
			// как если бы этот запрос пришел вторым
			return s.mapCompleteConflict(ctx, bookingID)
		}
		s.logger.Error("Complete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed booking id=%d", bookingID)
	return nil
}

// MarkNoShow помечает бронирование как no-show (клиент не пришел).
// Доступно только владельцу салона.
func (s *Service) MarkNoShow(ctx context.Context, bookingID int64, req *models.MarkNoShowRequest) error {
	s.logger.Info("MarkNoShow: marking booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, "MarkNoShow", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(ctx, booking.SalonID, req.UserID); err != nil {
		s.logger.Warn("MarkNoShow: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return err
	}

	if !domain.CanTransition(booking.Status, domain.StatusNoShow) {
		s.logger.Warn("MarkNoShow: booking id=%d cannot be marked, status=%s", bookingID, booking.Status)
		return ErrCannotMarkNoShow
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusNoShow); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("MarkNoShow: booking id=%d changed status concurrently", bookingID)
			return ErrCannotMarkNoShow
		}
		s.logger.Error("MarkNoShow: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkNoShow: successfully marked booking id=%d as no-show", bookingID)
	return nil
}

// Вспомогательные методы

// mapCompleteConflict перечитывает бронирование после несработавшего
// обновления и выбирает ошибку: повторное завершение отличаем от
// завершения отмененного или no-show
func (s *Service) mapCompleteConflict(ctx context.Context, bookingID int64) error {
	booking, err := s.getBooking(ctx, "Complete", bookingID)
	if err != nil {
		return err
	}

	if booking.Status == domain.StatusCompleted {
		s.logger.Warn("Complete: booking id=%d was completed concurrently", bookingID)
		return ErrAlreadyCompleted
	}

	s.logger.Warn("Complete: booking id=%d changed to status=%s concurrently", bookingID, booking.Status)
	return ErrCannotComplete
}

// getBooking получает бронирование с маппингом ошибок репозитория
func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию.
// Доступ есть у владельца бронирования и у владельца салона.
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, booking.SalonID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем салона
func (s *Service) checkOwnerAccess(ctx context.Context, salonID int64, userID int64) error {
	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("checkOwnerAccess: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get salon: %v", ErrInternal, err)
	}

	if salon.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of salon=%d", userID, salonID)
		return ErrAccessDenied
	}

	return nil
}
