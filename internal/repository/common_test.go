package repository_test

import (
	"testing"
	"time"

	"go-gin-event-hub/internal/model"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

var eventColumnNames = []string{
	"id", "event_id", "title", "slug", "description", "overview", "image", "venue", "location",
	"date", "time", "mode", "audience", "agenda", "organizer", "tags", "created_at", "updated_at",
}

var bookingColumnNames = []string{
	"id", "booking_id", "event_id", "slug", "email", "created_at", "updated_at",
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		mock.Close()
	})
	return mock
}

// newTestEvent 輔助函數：建立已正規化的測試活動
func newTestEvent(id int, title, slug string, tags ...string) *model.Event {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if len(tags) == 0 {
		tags = []string{"go"}
	}
	return &model.Event{
		ID:          id,
		EventID:     uuid.New(),
		Title:       title,
		Slug:        slug,
		Description: "A gathering of gophers",
		Overview:    "Talks and workshops",
		Image:       "https://res.cloudinary.com/demo/image/upload/event.png",
		Venue:       "Main Hall",
		Location:    "Taipei",
		Date:        "2025-03-15",
		Time:        "09:30",
		Mode:        "offline",
		Audience:    "Developers",
		Agenda:      []string{"Intro", "Q&A"},
		Organizer:   "Gopher Taipei",
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func eventRow(rows *pgxmock.Rows, e *model.Event) *pgxmock.Rows {
	return rows.AddRow(
		e.ID, e.EventID, e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, e.Mode, e.Audience, e.Agenda, e.Organizer, e.Tags, e.CreatedAt, e.UpdatedAt,
	)
}

func bookingRow(rows *pgxmock.Rows, b *model.Booking) *pgxmock.Rows {
	return rows.AddRow(b.ID, b.BookingID, b.EventID, b.Slug, b.Email, b.CreatedAt, b.UpdatedAt)
}
