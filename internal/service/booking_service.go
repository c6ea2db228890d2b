package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/publisher"
	"go-gin-event-hub/internal/queue"
	"go-gin-event-hub/internal/repository"
	"go-gin-event-hub/internal/validate"
	apperrors "go-gin-event-hub/pkg/app_errors"
	"go-gin-event-hub/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Create 參照的活動必須存在，否則回傳 ErrDanglingReference
	Create(ctx context.Context, eventID uuid.UUID, email string) (*model.Booking, error)
	// Update 只有變更 EventID 時才重新檢查參照
	Update(ctx context.Context, bookingID uuid.UUID, params model.UpdateBookingParams) (*model.Booking, error)
	UpdateEventReference(ctx context.Context, bookingID uuid.UUID, newEventID uuid.UUID) (*model.Booking, error)
	CountByEventSlug(ctx context.Context, slug string) (int, error)
}

type BookingServiceImpl struct {
	repo         repository.BookingRepository
	eventRepo    repository.EventRepository
	bookingQueue queue.BookingQueue
	publisher    publisher.EventPublisher
}

func NewBookingService(
	bookingRepository repository.BookingRepository,
	eventRepository repository.EventRepository,
	bookingQueue queue.BookingQueue,
	pub publisher.EventPublisher,
) BookingService {
	return &BookingServiceImpl{
		repo:         bookingRepository,
		eventRepo:    eventRepository,
		bookingQueue: bookingQueue,
		publisher:    pub,
	}
}

func (s *BookingServiceImpl) Create(ctx context.Context, eventID uuid.UUID, email string) (*model.Booking, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	event, err := s.referencedEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Create(ctx, &model.Booking{
		BookingID: uuid.New(),
		EventID:   event.EventID,
		Slug:      event.Slug,
		Email:     normalized,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, booking, event)
	return booking, nil
}

func (s *BookingServiceImpl) Update(ctx context.Context, bookingID uuid.UUID, params model.UpdateBookingParams) (*model.Booking, error) {
	booking, err := s.repo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var out model.UpdateBookingParams

	if params.Email != nil {
		normalized, err := normalizeEmail(*params.Email)
		if err != nil {
			return nil, err
		}
		out.Email = &normalized
	}

	// 只有參照本身改變時才檢查活動是否存在
	if params.EventID != nil {
		event, err := s.referencedEvent(ctx, *params.EventID)
		if err != nil {
			return nil, err
		}
		out.EventID = &event.EventID
		out.Slug = &event.Slug
	}

	if out.EventID == nil && out.Email == nil {
		return nil, apperrors.ErrInvalidInput
	}

	return s.repo.Update(ctx, booking.ID, out)
}

func (s *BookingServiceImpl) UpdateEventReference(ctx context.Context, bookingID uuid.UUID, newEventID uuid.UUID) (*model.Booking, error) {
	return s.Update(ctx, bookingID, model.UpdateBookingParams{EventID: &newEventID})
}

func (s *BookingServiceImpl) CountByEventSlug(ctx context.Context, slug string) (int, error) {
	if !validate.IsSlug(slug) {
		return 0, apperrors.ErrInvalidSlug
	}
	event, err := s.eventRepo.FindBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	return s.repo.CountByEventID(ctx, event.EventID)
}

func (s *BookingServiceImpl) referencedEvent(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	if eventID == uuid.Nil {
		return nil, apperrors.Required("event_id")
	}
	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDanglingReference, eventID)
		}
		return nil, err
	}
	return event, nil
}

// notify 確認信與整合事件皆為 best effort，失敗不影響報名結果
func (s *BookingServiceImpl) notify(ctx context.Context, booking *model.Booking, event *model.Event) {
	log := logger.WithComponent("booking_service").With(zap.String("booking_id", booking.BookingID.String()))

	msg := &model.BookingMessage{
		BookingID:  booking.BookingID,
		EventID:    event.EventID,
		EventTitle: event.Title,
		EventSlug:  event.Slug,
		EventDate:  event.Date,
		EventTime:  event.Time,
		Venue:      event.Venue,
		Email:      booking.Email,
	}
	if err := s.bookingQueue.PublishBooking(ctx, msg); err != nil {
		log.Error("failed to enqueue booking confirmation", zap.Error(err))
	}

	if err := s.publisher.Publish(ctx, publisher.RoutingBookingCreated, booking); err != nil {
		log.Warn("publish integration event failed", zap.String("routing_key", publisher.RoutingBookingCreated), zap.Error(err))
	}
}

func normalizeEmail(email string) (string, error) {
	if !validate.IsNonEmptyString(email) {
		return "", apperrors.Required("email")
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !validate.IsEmail(normalized) {
		return "", apperrors.Invalid("email", "must be a valid email address")
	}
	return normalized, nil
}
