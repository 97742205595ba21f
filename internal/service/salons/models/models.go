package models

import "github.com/salonbook/SalonBook-BookingService/internal/domain"

// SalonResponse ответ с данными салона
type SalonResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
}

// SalonListResponse ответ со списком салонов
type SalonListResponse struct {
	Salons []SalonResponse `json:"salons"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	SalonID         int64   `json:"salonId"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainSalon конвертирует domain модель в DTO
func FromDomainSalon(s *domain.Salon) *SalonResponse {
	if s == nil {
		return nil
	}
	return &SalonResponse{
		ID:      s.ID,
		Name:    s.Name,
		Address: s.Address,
		Rating:  s.Rating,
	}
}

// FromDomainSalonList конвертирует список domain моделей в DTO
func FromDomainSalonList(salons []*domain.Salon) *SalonListResponse {
	resp := &SalonListResponse{
		Salons: make([]SalonResponse, 0, len(salons)),
	}
	for _, s := range salons {
		if salonResp := FromDomainSalon(s); salonResp != nil {
			resp.Salons = append(resp.Salons, *salonResp)
		}
	}
	return resp
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, svc := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              svc.ID,
			SalonID:         svc.SalonID,
			Name:            svc.Name,
			Description:     svc.Description,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		})
	}
	return resp
}
