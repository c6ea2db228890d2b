package model

import (
	"time"

	"github.com/google/uuid"
)

// Event 活動模型；slug 由 title 推導，date / time 以正規格式儲存
type Event struct {
	ID          int       `json:"id" db:"id"`
	EventID     uuid.UUID `json:"event_id" db:"event_id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Overview    string    `json:"overview" db:"overview"`
	Image       string    `json:"image" db:"image"`
	Venue       string    `json:"venue" db:"venue"`
	Location    string    `json:"location" db:"location"`
	Date        string    `json:"date" db:"date"` // YYYY-MM-DD
	Time        string    `json:"time" db:"time"` // HH:MM
	Mode        string    `json:"mode" db:"mode"`
	Audience    string    `json:"audience" db:"audience"`
	Agenda      []string  `json:"agenda" db:"agenda"`
	Organizer   string    `json:"organizer" db:"organizer"`
	Tags        []string  `json:"tags" db:"tags"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// EventDraft 尚未驗證的建立請求資料
type EventDraft struct {
	Title       string
	Description string
	Overview    string
	Image       string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Agenda      []string
	Organizer   string
	Tags        []string
}

// UpdateEventParams nil 代表該欄位未變更
type UpdateEventParams struct {
	Title       *string
	Slug        *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Audience    *string
	Agenda      *[]string
	Organizer   *string
	Tags        *[]string
}

// IsEmpty 檢查是否沒有任何欄位需要更新
func (p UpdateEventParams) IsEmpty() bool {
	return p.Title == nil && p.Slug == nil && p.Description == nil && p.Overview == nil &&
		p.Image == nil && p.Venue == nil && p.Location == nil && p.Date == nil &&
		p.Time == nil && p.Mode == nil && p.Audience == nil && p.Agenda == nil &&
		p.Organizer == nil && p.Tags == nil
}
