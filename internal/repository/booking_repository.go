package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-event-hub/internal/database"
	"go-gin-event-hub/internal/model"
	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error)
	Update(ctx context.Context, id int, params model.UpdateBookingParams) (*model.Booking, error)
	CountByEventID(ctx context.Context, eventID uuid.UUID) (int, error)
}

type BookingRepositoryImpl struct {
	db database.DBTX
}

func NewBookingRepository(db database.DBTX) BookingRepository {
	return &BookingRepositoryImpl{
		db: db,
	}
}

const bookingColumns = `id, booking_id, event_id, slug, email, created_at, updated_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingID,
		&booking.EventID,
		&booking.Slug,
		&booking.Email,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (booking_id, event_id, slug, email)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + bookingColumns

	created, err := scanBooking(r.db.QueryRow(ctx, query,
		booking.BookingID, booking.EventID, booking.Slug, booking.Email,
	))
	if err != nil {
		return nil, mapWriteError(err, "create booking")
	}
	return created, nil
}

func (r *BookingRepositoryImpl) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE booking_id = $1
	`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateBookingParams) (*model.Booking, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.EventID != nil {
		sets = append(sets, fmt.Sprintf("event_id = $%d", argPos))
		args = append(args, *params.EventID)
		argPos++
	}

	if params.Slug != nil {
		sets = append(sets, fmt.Sprintf("slug = $%d", argPos))
		args = append(args, *params.Slug)
		argPos++
	}

	if params.Email != nil {
		sets = append(sets, fmt.Sprintf("email = $%d", argPos))
		args = append(args, *params.Email)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE bookings
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, mapWriteError(err, "update booking")
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) CountByEventID(ctx context.Context, eventID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE event_id = $1
	`

	var count int
	if err := r.db.QueryRow(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
