package mocks

import (
	"context"

	"go-gin-event-hub/internal/model"

	"github.com/stretchr/testify/mock"
)

type NotifierMock struct {
	mock.Mock
}

func NewNotifierMock() *NotifierMock {
	return &NotifierMock{}
}

func (m *NotifierMock) BookingConfirmed(ctx context.Context, msg *model.BookingMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
