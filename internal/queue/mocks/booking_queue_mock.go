package mocks

import (
	"context"

	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/queue"

	"github.com/stretchr/testify/mock"
)

type BookingQueueMock struct {
	mock.Mock
}

func NewBookingQueueMock() *BookingQueueMock {
	return &BookingQueueMock{}
}

func (m *BookingQueueMock) PublishBooking(ctx context.Context, msg *model.BookingMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *BookingQueueMock) SubscribeBookings(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
