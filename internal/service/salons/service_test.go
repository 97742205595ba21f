package salons

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	salonRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/salon"
)

type fakeSalonRepo struct {
	salons map[int64]*domain.Salon
}

func (f *fakeSalonRepo) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	s, ok := f.salons[id]
	if !ok {
		return nil, salonRepo.ErrSalonNotFound
	}
	return s, nil
}

func (f *fakeSalonRepo) List(ctx context.Context) ([]*domain.Salon, error) {
	out := make([]*domain.Salon, 0, len(f.salons))
	for _, s := range f.salons {
		out = append(out, s)
	}
	return out, nil
}

type fakeServiceRepo struct {
	services map[int64][]*domain.Service
}

func (f *fakeServiceRepo) ListBySalon(ctx context.Context, salonID int64) ([]*domain.Service, error) {
	return f.services[salonID], nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService() *Service {
	salons := &fakeSalonRepo{salons: map[int64]*domain.Salon{
		1: {ID: 1, OwnerID: 10, Name: "Fade Factory", Rating: 4.8},
		2: {ID: 2, OwnerID: 11, Name: "Cut & Go", Rating: 4.2},
	}}
	services := &fakeServiceRepo{services: map[int64][]*domain.Service{
		1: {{ID: 5, SalonID: 1, Name: "Fade", Price: 250, DurationMinutes: 40}},
	}}
	return NewService(salons, services, nopLogger{})
}

func TestList(t *testing.T) {
	resp, err := newTestService().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Salons, 2)
}

func TestGetByID(t *testing.T) {
	svc := newTestService()

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Fade Factory", resp.Name)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestListServices(t *testing.T) {
	svc := newTestService()

	// Salon with its own services
	resp, err := svc.ListServices(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Fade", resp.Services[0].Name)

	// Salon without services gets the default set
	resp, err = svc.ListServices(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, resp.Services, 3)
	assert.Equal(t, "Haircut", resp.Services[0].Name)
	assert.Negative(t, resp.Services[0].ID)

	_, err = svc.ListServices(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}
