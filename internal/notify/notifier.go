package notify

import (
	"context"
	"fmt"
	"strings"

	"go-gin-event-hub/internal/model"
)

const bookingConfirmationTemplate = "booking_confirmation"

type Notifier interface {
	// BookingConfirmed 寄出報名確認信
	BookingConfirmed(ctx context.Context, msg *model.BookingMessage) error
}

type EmailNotifierImpl struct {
	mailer   Mailer
	renderer TemplateRenderer
	baseURL  string
}

// NewEmailNotifier baseURL 用於組出活動頁連結，例如 https://devevent.example.com
func NewEmailNotifier(mailer Mailer, renderer TemplateRenderer, baseURL string) Notifier {
	return &EmailNotifierImpl{
		mailer:   mailer,
		renderer: renderer,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

type bookingConfirmationData struct {
	EventTitle string
	EventDate  string
	EventTime  string
	Venue      string
	EventURL   string
	BookingID  string
}

func (n *EmailNotifierImpl) BookingConfirmed(ctx context.Context, msg *model.BookingMessage) error {
	data := bookingConfirmationData{
		EventTitle: msg.EventTitle,
		EventDate:  msg.EventDate,
		EventTime:  msg.EventTime,
		Venue:      msg.Venue,
		EventURL:   fmt.Sprintf("%s/events/%s", n.baseURL, msg.EventSlug),
		BookingID:  msg.BookingID.String(),
	}

	subject, html, text, err := n.renderer.Render(bookingConfirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("render booking confirmation: %w", err)
	}

	if err := n.mailer.Send(ctx, msg.Email, subject, html, text); err != nil {
		return fmt.Errorf("send booking confirmation: %w", err)
	}
	return nil
}
