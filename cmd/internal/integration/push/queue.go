package push

import (
	"agenda/cmd/internal/domain/entity"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
)

type Sender interface {
	Send(ctx context.Context, sub *entity.PushSubscription, n *Notification) error
}

type SubscriptionRemover interface {
	Delete(patientID int) error
}

type QueueConfig struct {
	Workers int
	Size    int
	Timeout time.Duration
}

type job struct {
	sub entity.PushSubscription
	n   Notification
}

// Queue delivers notifications in the background. Notify never blocks the
// caller and delivery failures never reach it; they are logged and counted.
// There are no retries.
type Queue struct {
	sender  Sender
	remover SubscriptionRemover
	timeout time.Duration

	jobs chan job
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewQueue(sender Sender, remover SubscriptionRemover, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Size <= 0 {
		cfg.Size = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	q := &Queue{
		sender:  sender,
		remover: remover,
		timeout: cfg.Timeout,
		jobs:    make(chan job, cfg.Size),
	}

	q.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go q.work()
	}
	return q
}

func (q *Queue) Notify(sub *entity.PushSubscription, n *Notification) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		log.Warnf("push queue closed, dropping notification for patient %d", sub.PatientID)
		notificationsTotal.WithLabelValues(resultDropped).Inc()
		return
	}

	select {
	case q.jobs <- job{sub: *sub, n: *n}:
	default:
		log.Warnf("push queue full, dropping notification for patient %d", sub.PatientID)
		notificationsTotal.WithLabelValues(resultDropped).Inc()
	}
}

// Close stops accepting notifications and waits for queued ones to finish.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *Queue) work() {
	defer q.wg.Done()
	for j := range q.jobs {
		q.deliver(j)
	}
}

func (q *Queue) deliver(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	err := q.sender.Send(ctx, &j.sub, &j.n)
	switch {
	case err == nil:
		log.Infof("push notification sent to patient %d", j.sub.PatientID)
		notificationsTotal.WithLabelValues(resultSent).Inc()

	case errors.Is(err, ErrSubscriptionGone):
		log.Warnf("push subscription for patient %d is gone, removing it", j.sub.PatientID)
		notificationsTotal.WithLabelValues(resultGone).Inc()
		if q.remover == nil {
			return
		}
		if rerr := q.remover.Delete(j.sub.PatientID); rerr != nil {
			log.Errorf("failed to remove push subscription for patient %d: %v", j.sub.PatientID, rerr)
		}

	default:
		log.Errorf("failed to send push notification to patient %d: %v", j.sub.PatientID, err)
		notificationsTotal.WithLabelValues(resultFailed).Inc()
	}
}
