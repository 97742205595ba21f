package salons

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	salonRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/salon"
	"github.com/salonbook/SalonBook-BookingService/internal/service/salons/models"
)

// Service сервис каталога салонов и их услуг (read-only)
type Service struct {
	salonRepo   SalonRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *Service {
	return &Service{
		salonRepo:   salonRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List возвращает все салоны
func (s *Service) List(ctx context.Context) (*models.SalonListResponse, error) {
	salons, err := s.salonRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSalonList(salons), nil
}

// GetByID возвращает салон по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SalonResponse, error) {
	salon, err := s.salonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("GetByID: salon id=%d not found", id)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetByID: repository error for salon id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSalon(salon), nil
}

// ListServices возвращает услуги салона.
// Салон без собственных услуг получает дефолтный набор: клиент всегда
// видит хотя бы что-то, что можно забронировать.
func (s *Service) ListServices(ctx context.Context, salonID int64) (*models.ServiceListResponse, error) {
	// Салон должен существовать
	if _, err := s.salonRepo.GetByID(ctx, salonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("ListServices: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("ListServices: failed to get salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListServices - failed to get salon: %v", ErrInternal, err)
	}

	services, err := s.serviceRepo.ListBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("ListServices: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	if len(services) == 0 {
		s.logger.Info("ListServices: salon id=%d has no services, using defaults", salonID)
		services = domain.DefaultServices(salonID)
	}

	return models.FromDomainServiceList(services), nil
}
