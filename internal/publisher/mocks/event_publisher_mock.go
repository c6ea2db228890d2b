package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EventPublisherMock struct {
	mock.Mock
}

func NewEventPublisherMock() *EventPublisherMock {
	return &EventPublisherMock{}
}

func (m *EventPublisherMock) Publish(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *EventPublisherMock) Close() {
	m.Called()
}
