package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-event-hub/internal/database"
	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/normalize"
	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	FindBySlug(ctx context.Context, slug string) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error)
	ListSimilar(ctx context.Context, id int, tags []string) ([]*model.Event, error)
}

type EventRepositoryImpl struct {
	db database.DBTX
}

func NewEventRepository(db database.DBTX) EventRepository {
	return &EventRepositoryImpl{
		db: db,
	}
}

const eventColumns = `id, event_id, title, slug, description, overview, image, venue, location,
		       date, time, mode, audience, agenda, organizer, tags, created_at, updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.EventID,
		&event.Title,
		&event.Slug,
		&event.Description,
		&event.Overview,
		&event.Image,
		&event.Venue,
		&event.Location,
		&event.Date,
		&event.Time,
		&event.Mode,
		&event.Audience,
		&event.Agenda,
		&event.Organizer,
		&event.Tags,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// 舊資料可能把整串 JSON / CSV 存成單一元素
	event.Agenda = normalize.ExpandLegacyList(event.Agenda)
	event.Tags = normalize.ExpandLegacyList(event.Tags)
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (
			event_id, title, slug, description, overview, image, venue, location,
			date, time, mode, audience, agenda, organizer, tags
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + eventColumns

	created, err := scanEvent(r.db.QueryRow(ctx, query,
		event.EventID, event.Title, event.Slug, event.Description, event.Overview,
		event.Image, event.Venue, event.Location, event.Date, event.Time,
		event.Mode, event.Audience, event.Agenda, event.Organizer, event.Tags,
	))
	if err != nil {
		return nil, mapWriteError(err, "create event")
	}
	return created, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY created_at DESC, id DESC
	`
	return r.queryEvents(ctx, query)
}

func (r *EventRepositoryImpl) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE event_id = $1
	`
	return r.findOne(ctx, query, eventID)
}

func (r *EventRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE slug = $1
	`
	return r.findOne(ctx, query, slug)
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Slug != nil {
		add("slug", *params.Slug)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.Overview != nil {
		add("overview", *params.Overview)
	}
	if params.Image != nil {
		add("image", *params.Image)
	}
	if params.Venue != nil {
		add("venue", *params.Venue)
	}
	if params.Location != nil {
		add("location", *params.Location)
	}
	if params.Date != nil {
		add("date", *params.Date)
	}
	if params.Time != nil {
		add("time", *params.Time)
	}
	if params.Mode != nil {
		add("mode", *params.Mode)
	}
	if params.Audience != nil {
		add("audience", *params.Audience)
	}
	if params.Agenda != nil {
		add("agenda", *params.Agenda)
	}
	if params.Organizer != nil {
		add("organizer", *params.Organizer)
	}
	if params.Tags != nil {
		add("tags", *params.Tags)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	add("updated_at", time.Now().UTC())

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	event, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, mapWriteError(err, "update event")
	}

	return event, nil
}

// ListSimilar 找出與 tags 至少有一個交集的其他活動，新建立的在前
func (r *EventRepositoryImpl) ListSimilar(ctx context.Context, id int, tags []string) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id <> $1 AND tags && $2
		ORDER BY created_at DESC, id DESC
	`
	return r.queryEvents(ctx, query, id, tags)
}

func (r *EventRepositoryImpl) findOne(ctx context.Context, query string, args ...any) (*model.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) queryEvents(ctx context.Context, query string, args ...any) ([]*model.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
