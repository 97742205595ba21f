package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	bookingRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/salon"
	"github.com/salonbook/SalonBook-BookingService/internal/integrations/trustservice"
	"github.com/salonbook/SalonBook-BookingService/internal/service/bookings/models"
	"github.com/salonbook/SalonBook-BookingService/pkg/ptr"
	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

// --- fakes ---

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	updatedStatus *domain.BookingStatus
	cancelled     bool
	cancelReason  string

	// flipBeforeUpdate simulates a concurrent writer landing between the
	// service's read and its update: the booking takes this status right
	// before the guarded update runs
	flipBeforeUpdate *domain.BookingStatus
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.SalonID != filter.SalonID {
			continue
		}
		if !filter.IncludeInactive && filter.Status == nil && !b.IsActive() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if f.flipBeforeUpdate != nil {
		b.Status = *f.flipBeforeUpdate
		f.flipBeforeUpdate = nil
	}
	// The real repository updates only upcoming rows
	if b.Status != domain.StatusUpcoming {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = status
	f.updatedStatus = &status
	return nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if f.flipBeforeUpdate != nil {
		b.Status = *f.flipBeforeUpdate
		f.flipBeforeUpdate = nil
	}
	if b.Status != domain.StatusUpcoming {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = domain.StatusCancelled
	f.cancelled = true
	f.cancelReason = reason
	return nil
}

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

type fakeTrustClient struct {
	calls  []int64
	failed bool
}

func (f *fakeTrustClient) DecrementOnCancelWithGracefulDegradation(ctx context.Context, userID int64) (*trustservice.TrustScore, error) {
	f.calls = append(f.calls, userID)
	if f.failed {
		return nil, trustservice.ErrServiceDegraded
	}
	return &trustservice.TrustScore{UserID: userID, Score: 90}, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- helpers ---

const (
	customerID = int64(7)
	ownerID    = int64(20)
	salonID    = int64(3)
)

func upcomingBooking(id int64) *domain.Booking {
	bt, _ := types.NewTimeStringFromString("10:00")
	return &domain.Booking{
		ID:          id,
		UserID:      customerID,
		SalonID:     salonID,
		ServiceID:   1,
		BookingDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		BookingTime: bt,
		Status:      domain.StatusUpcoming,
		ServiceName: "Haircut",
	}
}

func newTestService(repo *fakeBookingRepo) (*Service, *fakeTrustClient) {
	trust := &fakeTrustClient{}
	salons := &fakeSalonRepo{salons: map[int64]*domain.Salon{
		salonID: {ID: salonID, OwnerID: ownerID},
	}}
	return NewService(repo, salons, trust, nopLogger{}), trust
}

// --- tests ---

func TestGetByIDAccess(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, _ := newTestService(repo)

	// Booking owner sees it
	resp, err := svc.GetByID(context.Background(), 1, customerID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.ID)
	assert.Equal(t, "10:00", resp.BookingTime)
	assert.Equal(t, "10:00 AM", resp.DisplayTime)

	// Salon owner sees it too
	_, err = svc.GetByID(context.Background(), 1, ownerID)
	assert.NoError(t, err)

	// A stranger does not
	_, err = svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 404, customerID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelByCustomerDecrementsTrust(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, trust := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             customerID,
		CancellationReason: "schedule conflict",
	})
	require.NoError(t, err)

	assert.True(t, repo.cancelled)
	assert.Equal(t, "schedule conflict", repo.cancelReason)
	assert.Equal(t, []int64{customerID}, trust.calls)
}

func TestCancelByOwnerSkipsTrust(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, trust := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: ownerID})
	require.NoError(t, err)

	assert.True(t, repo.cancelled)
	assert.Empty(t, trust.calls)
}

func TestCancelSurvivesTrustServiceOutage(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, trust := newTestService(repo)
	trust.failed = true

	// The cancellation itself must not be rolled back
	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: customerID})
	require.NoError(t, err)
	assert.True(t, repo.cancelled)
}

func TestCancelTerminalBooking(t *testing.T) {
	b := upcomingBooking(1)
	b.Status = domain.StatusCompleted
	repo := newFakeBookingRepo(b)
	svc, trust := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: customerID})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, trust.calls)
}

func TestCancelByStranger(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, _ := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.cancelled)
}

func TestCompleteByOwner(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, _ := newTestService(repo)

	err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{UserID: ownerID})
	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusCompleted, *repo.updatedStatus)
}

func TestCompleteTwice(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, _ := newTestService(repo)

	require.NoError(t, svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{UserID: ownerID}))

	// A repeated check-in (say, a rescanned QR code) must not silently succeed
	err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestCompleteCancelledBooking(t *testing.T) {
	b := upcomingBooking(1)
	b.Status = domain.StatusCancelled
	repo := newFakeBookingRepo(b)
	svc, _ := newTestService(repo)

	err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrCannotComplete)
}

func TestCompleteLosesRaceToCancel(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, _ := newTestService(repo)

	// The booking is cancelled by another request after our read but
	// before our update: the cancellation must not be overwritten
	repo.flipBeforeUpdate = ptr.Ptr(domain.StatusCancelled)

	err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrCannotComplete)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

func TestCompleteLosesRaceToComplete(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, _ := newTestService(repo)

	repo.flipBeforeUpdate = ptr.Ptr(domain.StatusCompleted)

	err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestCancelLosesRaceToComplete(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, trust := newTestService(repo)

	repo.flipBeforeUpdate = ptr.Ptr(domain.StatusCompleted)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: customerID})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, domain.StatusCompleted, repo.bookings[1].Status)
	assert.Empty(t, trust.calls)
}

func TestCompleteByCustomerDenied(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, _ := newTestService(repo)

	err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{UserID: customerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCompleteNotFound(t *testing.T) {
	svc, _ := newTestService(newFakeBookingRepo())

	err := svc.Complete(context.Background(), 404, &models.CompleteBookingRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestMarkNoShow(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, _ := newTestService(repo)

	err := svc.MarkNoShow(context.Background(), 1, &models.MarkNoShowRequest{UserID: ownerID})
	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusNoShow, *repo.updatedStatus)

	// no_show is terminal
	err = svc.MarkNoShow(context.Background(), 1, &models.MarkNoShowRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrCannotMarkNoShow)
}

func TestGetUserBookings(t *testing.T) {
	first := upcomingBooking(1)
	second := upcomingBooking(2)
	second.Status = domain.StatusCompleted
	repo := newFakeBookingRepo(first, second)
	svc, _ := newTestService(repo)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:      customerID,
		RequesterID: customerID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	// Status filter
	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:      customerID,
		RequesterID: customerID,
		Status:      ptr.Ptr("upcoming"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	// Unknown status is rejected
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:      customerID,
		RequesterID: customerID,
		Status:      ptr.Ptr("confirmed"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Only your own history
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:      customerID,
		RequesterID: 999,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetSalonBookings(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(1))
	svc, _ := newTestService(repo)

	resp, err := svc.GetSalonBookings(context.Background(), &models.GetSalonBookingsRequest{
		UserID:  ownerID,
		SalonID: salonID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	// Not the owner
	_, err = svc.GetSalonBookings(context.Background(), &models.GetSalonBookingsRequest{
		UserID:  customerID,
		SalonID: salonID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
