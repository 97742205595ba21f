package get_occupied_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	salonRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/salon"
	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	occupied []types.TimeString
	err      error
}

func (f *fakeBookingRepo) GetOccupiedTimes(ctx context.Context, salonID int64, date time.Time) ([]types.TimeString, error) {
	return f.occupied, f.err
}

type fakeSalonRepo struct {
	salon *domain.Salon
	err   error
}

func (f *fakeSalonRepo) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	return f.salon, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func newTestUseCase(occupied ...string) *UseCase {
	times := make([]types.TimeString, 0, len(occupied))
	for _, s := range occupied {
		ts, _ := types.NewTimeStringFromString(s)
		times = append(times, ts)
	}
	return NewUseCase(
		&fakeBookingRepo{occupied: times},
		&fakeSalonRepo{salon: &domain.Salon{ID: 1}},
		domain.DefaultSlotGrid(),
		nopLogger{},
	)
}

func testRequest() *Request {
	return &Request{
		SalonID: 1,
		Date:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecuteFullGrid(t *testing.T) {
	uc := newTestUseCase("10:00", "14:30")

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// The whole catalog comes back every time, occupancy is a flag
	require.Len(t, resp.Slots, 16)
	assert.Equal(t, "10:00", resp.Slots[0].Time.String())
	assert.Equal(t, "10:00 AM", resp.Slots[0].Display)
	assert.True(t, resp.Slots[0].Occupied)
	assert.Equal(t, "17:30", resp.Slots[15].Time.String())
	assert.Equal(t, "5:30 PM", resp.Slots[15].Display)
	assert.False(t, resp.Slots[15].Occupied)

	occupied := 0
	for _, slot := range resp.Slots {
		if slot.Occupied {
			occupied++
		}
	}
	assert.Equal(t, 2, occupied)

	// No selected slot in the request: no suggestion either
	assert.Nil(t, resp.SuggestedTime)
}

func TestExecuteSuggestedTime(t *testing.T) {
	uc := newTestUseCase("10:00", "10:30")

	// Selected slot is taken: suggest the first free slot of the day
	selected := mustTime(t, "10:00")
	req := testRequest()
	req.Selected = &selected

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.SuggestedTime)
	assert.Equal(t, "11:00", resp.SuggestedTime.String())
}

func TestExecuteSelectedStillFree(t *testing.T) {
	uc := newTestUseCase("10:00")

	selected := mustTime(t, "12:00")
	req := testRequest()
	req.Selected = &selected

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.SuggestedTime)
}

func TestExecuteFullyBookedDay(t *testing.T) {
	catalog, err := domain.DefaultSlotGrid().GenerateSlots()
	require.NoError(t, err)

	all := make([]string, len(catalog))
	for i, s := range catalog {
		all[i] = s.String()
	}
	uc := newTestUseCase(all...)

	selected := mustTime(t, "10:00")
	req := testRequest()
	req.Selected = &selected

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Nothing to suggest: the client clears the selection
	assert.Nil(t, resp.SuggestedTime)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Occupied)
	}
}

func TestExecuteSalonNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeSalonRepo{err: salonRepo.ErrSalonNotFound},
		domain.DefaultSlotGrid(),
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase()

	req := testRequest()
	req.SalonID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = testRequest()
	req.Date = time.Time{}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
