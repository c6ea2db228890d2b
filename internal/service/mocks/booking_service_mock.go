package mocks

import (
	"context"

	"go-gin-event-hub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type BookingServiceMock struct {
	mock.Mock
}

func NewBookingServiceMock() *BookingServiceMock {
	return &BookingServiceMock{}
}

func (m *BookingServiceMock) Create(ctx context.Context, eventID uuid.UUID, email string) (*model.Booking, error) {
	args := m.Called(ctx, eventID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) Update(ctx context.Context, bookingID uuid.UUID, params model.UpdateBookingParams) (*model.Booking, error) {
	args := m.Called(ctx, bookingID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) UpdateEventReference(ctx context.Context, bookingID uuid.UUID, newEventID uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, bookingID, newEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) CountByEventSlug(ctx context.Context, slug string) (int, error) {
	args := m.Called(ctx, slug)
	return args.Int(0), args.Error(1)
}
