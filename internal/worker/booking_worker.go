package worker

import (
	"context"

	"go-gin-event-hub/internal/notify"
	"go-gin-event-hub/internal/queue"
	"go-gin-event-hub/pkg/logger"

	"go.uber.org/zap"
)

type BookingWorker interface {
	// 訂閱報名通知隊列並寄送確認信
	Start(ctx context.Context) error
	// Done 在 Start 的 goroutine 結束後關閉
	Done() <-chan struct{}
}

type BookingWorkerImpl struct {
	notifier notify.Notifier
	queue    queue.BookingQueue
	done     chan struct{}
}

func NewBookingWorker(notifier notify.Notifier, queue queue.BookingQueue) BookingWorker {
	return &BookingWorkerImpl{
		notifier: notifier,
		queue:    queue,
		done:     make(chan struct{}),
	}
}

func (w *BookingWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeBookings(ctx)
	if err != nil {
		close(w.done)
		return err
	}

	log := logger.WithComponent("booking_worker")

	go func() {
		defer close(w.done)
		for msg := range msgs {
			err := w.notifier.BookingConfirmed(ctx, msg.Data)
			if err != nil {
				// 寄信失敗（例如 SES throttling），留給隊列重試
				log.Warn("booking confirmation failed, requeue",
					zap.String("booking_id", msg.Data.BookingID.String()),
					zap.Error(err),
				)
				msg.Nack(true)
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}

func (w *BookingWorkerImpl) Done() <-chan struct{} {
	return w.done
}
