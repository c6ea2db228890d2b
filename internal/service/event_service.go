package service

import (
	"context"
	"errors"
	"strings"

	"go-gin-event-hub/internal/cache"
	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/normalize"
	"go-gin-event-hub/internal/publisher"
	"go-gin-event-hub/internal/repository"
	"go-gin-event-hub/internal/validate"
	apperrors "go-gin-event-hub/pkg/app_errors"
	"go-gin-event-hub/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, draft model.EventDraft) (*model.Event, error)
	// UpdateByEventID 只有 patch 含 title 時才重新推導 slug；date / time 每次都重新正規化
	UpdateByEventID(ctx context.Context, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	// FindSimilar 找出與指定活動共用至少一個 tag 的其他活動；任何錯誤都回傳空陣列
	FindSimilar(ctx context.Context, slug string) []*model.Event
}

type EventServiceImpl struct {
	repo      repository.EventRepository
	cache     cache.EventCache
	publisher publisher.EventPublisher
}

func NewEventService(repo repository.EventRepository, eventCache cache.EventCache, pub publisher.EventPublisher) EventService {
	return &EventServiceImpl{repo: repo, cache: eventCache, publisher: pub}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	if !validate.IsSlug(slug) {
		return nil, apperrors.ErrInvalidSlug
	}

	log := logger.WithComponent("event_service")

	cached, err := s.cache.Get(ctx, slug)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn("event cache read failed", zap.String("slug", slug), zap.Error(err))
	}

	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, event); err != nil {
		log.Warn("event cache write failed", zap.String("slug", slug), zap.Error(err))
	}
	return event, nil
}

func (s *EventServiceImpl) GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	return s.repo.FindByEventID(ctx, eventID)
}

func (s *EventServiceImpl) Create(ctx context.Context, draft model.EventDraft) (*model.Event, error) {
	event := &model.Event{
		EventID:     uuid.New(),
		Title:       draft.Title,
		Description: draft.Description,
		Overview:    draft.Overview,
		Image:       draft.Image,
		Venue:       draft.Venue,
		Location:    draft.Location,
		Date:        draft.Date,
		Time:        draft.Time,
		Mode:        draft.Mode,
		Audience:    draft.Audience,
		Agenda:      draft.Agenda,
		Organizer:   draft.Organizer,
		Tags:        draft.Tags,
	}

	if err := validateAndNormalize(event, true); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, publisher.RoutingEventCreated, created)
	return created, nil
}

func (s *EventServiceImpl) UpdateByEventID(ctx context.Context, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	// slug 只能由 title 推導
	params.Slug = nil
	if params.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}

	existing, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	merged := *existing
	applyEventPatch(&merged, params)

	titleChanged := params.Title != nil
	if err := validateAndNormalize(&merged, titleChanged); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, existing.ID, persistedEventParams(&merged, params, titleChanged))
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, existing.Slug, updated.Slug); err != nil {
		logger.WithComponent("event_service").Warn("event cache invalidate failed",
			zap.String("old_slug", existing.Slug),
			zap.String("new_slug", updated.Slug),
			zap.Error(err),
		)
	}

	s.publish(ctx, publisher.RoutingEventUpdated, updated)
	return updated, nil
}

func (s *EventServiceImpl) FindSimilar(ctx context.Context, slug string) []*model.Event {
	log := logger.WithComponent("event_service").With(zap.String("slug", slug))
	empty := make([]*model.Event, 0)

	if !validate.IsSlug(slug) {
		log.Debug("similar events: malformed slug")
		return empty
	}

	target, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, apperrors.ErrEventNotFound) {
			log.Error("similar events: load target failed", zap.Error(err))
		}
		return empty
	}

	similar, err := s.repo.ListSimilar(ctx, target.ID, target.Tags)
	if err != nil {
		log.Error("similar events: query failed", zap.Error(err))
		return empty
	}
	if similar == nil {
		return empty
	}
	return similar
}

// publish 整合事件為 best effort，失敗只寫 log
func (s *EventServiceImpl) publish(ctx context.Context, routingKey string, event *model.Event) {
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		logger.WithComponent("event_service").Warn("publish integration event failed",
			zap.String("routing_key", routingKey),
			zap.String("event_id", event.EventID.String()),
			zap.Error(err),
		)
	}
}

// validateAndNormalize 寫入前的唯一入口：檢查必填欄位、推導 slug、正規化 date / time。
// 依序執行，遇到第一個錯誤即返回。
func validateAndNormalize(event *model.Event, deriveSlug bool) error {
	required := []struct {
		name  string
		value *string
	}{
		{"title", &event.Title},
		{"description", &event.Description},
		{"overview", &event.Overview},
		{"image", &event.Image},
		{"venue", &event.Venue},
		{"location", &event.Location},
		{"date", &event.Date},
		{"time", &event.Time},
		{"mode", &event.Mode},
		{"audience", &event.Audience},
		{"organizer", &event.Organizer},
	}
	for _, f := range required {
		if !validate.IsNonEmptyString(*f.value) {
			return apperrors.Required(f.name)
		}
		*f.value = strings.TrimSpace(*f.value)
	}

	lists := []struct {
		name  string
		value *[]string
	}{
		{"agenda", &event.Agenda},
		{"tags", &event.Tags},
	}
	for _, f := range lists {
		if !validate.IsNonEmptyStringArray(*f.value) {
			return apperrors.Invalid(f.name, "must be a non-empty array of non-empty strings")
		}
		trimmed := make([]string, len(*f.value))
		for i, item := range *f.value {
			trimmed[i] = strings.TrimSpace(item)
		}
		*f.value = trimmed
	}

	if deriveSlug {
		slug := normalize.DeriveSlug(event.Title)
		if slug == "" {
			return apperrors.ErrSlugDerivationFailed
		}
		if len(slug) > validate.MaxSlugLength {
			slug = strings.TrimRight(slug[:validate.MaxSlugLength], "-")
		}
		event.Slug = slug
	}

	date, err := normalize.Date(event.Date)
	if err != nil {
		return err
	}
	event.Date = date

	tm, err := normalize.Time(event.Time)
	if err != nil {
		return err
	}
	event.Time = tm

	return nil
}

func applyEventPatch(event *model.Event, p model.UpdateEventParams) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&event.Title, p.Title)
	setString(&event.Description, p.Description)
	setString(&event.Overview, p.Overview)
	setString(&event.Image, p.Image)
	setString(&event.Venue, p.Venue)
	setString(&event.Location, p.Location)
	setString(&event.Date, p.Date)
	setString(&event.Time, p.Time)
	setString(&event.Mode, p.Mode)
	setString(&event.Audience, p.Audience)
	setString(&event.Organizer, p.Organizer)
	if p.Agenda != nil {
		event.Agenda = *p.Agenda
	}
	if p.Tags != nil {
		event.Tags = *p.Tags
	}
}

// persistedEventParams 將 patch 中的欄位換成正規化後的值，並且一律寫回 date / time
func persistedEventParams(merged *model.Event, p model.UpdateEventParams, titleChanged bool) model.UpdateEventParams {
	out := model.UpdateEventParams{
		Date: &merged.Date,
		Time: &merged.Time,
	}
	pick := func(changed *string, value *string) *string {
		if changed == nil {
			return nil
		}
		return value
	}
	out.Title = pick(p.Title, &merged.Title)
	out.Description = pick(p.Description, &merged.Description)
	out.Overview = pick(p.Overview, &merged.Overview)
	out.Image = pick(p.Image, &merged.Image)
	out.Venue = pick(p.Venue, &merged.Venue)
	out.Location = pick(p.Location, &merged.Location)
	out.Mode = pick(p.Mode, &merged.Mode)
	out.Audience = pick(p.Audience, &merged.Audience)
	out.Organizer = pick(p.Organizer, &merged.Organizer)
	if titleChanged {
		out.Slug = &merged.Slug
	}
	if p.Agenda != nil {
		out.Agenda = &merged.Agenda
	}
	if p.Tags != nil {
		out.Tags = &merged.Tags
	}
	return out
}
