package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking 報名紀錄，EventID 指向 events.event_id（不擁有 Event）
type Booking struct {
	ID        int       `json:"id" db:"id"`
	BookingID uuid.UUID `json:"booking_id" db:"booking_id"`
	EventID   uuid.UUID `json:"event_id" db:"event_id"`
	Slug      string    `json:"slug" db:"slug"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateBookingParams nil 代表該欄位未變更；只有 EventID 變更時才重新檢查參照
type UpdateBookingParams struct {
	EventID *uuid.UUID
	Slug    *string
	Email   *string
}

// CreateBookingRequest 建立報名請求
type CreateBookingRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
	Email   string    `json:"email" binding:"required,notblank"`
}

// UpdateBookingRequest 更新報名請求
type UpdateBookingRequest struct {
	EventID *uuid.UUID `json:"event_id"`
	Email   *string    `json:"email" binding:"omitempty,notblank"`
}

// BookingMessage 放進通知佇列的訊息內容
type BookingMessage struct {
	BookingID  uuid.UUID `json:"booking_id"`
	EventID    uuid.UUID `json:"event_id"`
	EventTitle string    `json:"event_title"`
	EventSlug  string    `json:"event_slug"`
	EventDate  string    `json:"event_date"`
	EventTime  string    `json:"event_time"`
	Venue      string    `json:"venue"`
	Email      string    `json:"email"`
}
