package queue

import (
	"context"

	"go-gin-event-hub/internal/model"
)

type Delivery struct {
	Data *model.BookingMessage
	Ack  func()
	Nack func(requeue bool)
}

type BookingQueue interface {
	// 發送報名通知到隊列
	PublishBooking(ctx context.Context, msg *model.BookingMessage) error
	// 訂閱報名通知隊列
	SubscribeBookings(ctx context.Context) (<-chan Delivery, error)
}

type BookingQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.BookingMessage
}

func NewBookingQueue(bufferSize int) BookingQueue {
	return &BookingQueueImpl{
		ch: make(chan *model.BookingMessage, bufferSize),
	}
}

func (q *BookingQueueImpl) PublishBooking(ctx context.Context, msg *model.BookingMessage) error {
	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *BookingQueueImpl) SubscribeBookings(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: msg,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if !requeue {
							return
						}
						// 非阻塞重回隊列，buffer 滿時丟棄
						select {
						case q.ch <- msg:
						default:
						}
					},
				}

				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
