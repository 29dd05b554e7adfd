package service

import (
	"sync"
	"time"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
)

const maxPendingToasts = 20

// ToastQueue keeps notifications until the front end collects them.
// When full, the oldest toast is dropped.
type ToastQueue struct {
	mu     sync.Mutex
	toasts []entity.Notification
	now    func() time.Time
}

func NewToastQueue(now func() time.Time) *ToastQueue {
	if now == nil {
		now = time.Now
	}
	return &ToastQueue{now: now}
}

func (q *ToastQueue) Notify(level entity.NotificationLevel, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.toasts) == maxPendingToasts {
		q.toasts = q.toasts[1:]
	}
	q.toasts = append(q.toasts, entity.Notification{
		Level:   level,
		Message: message,
		At:      q.now(),
	})
}

func (q *ToastQueue) Drain() []entity.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	toasts := q.toasts
	q.toasts = nil
	if toasts == nil {
		return []entity.Notification{}
	}
	return toasts
}
