// Package notification provides the in-app notification bell feed.
// External push transports are the surrounding application's concern; this
// service only records and broadcasts in-process.
package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	TypeAlert  = "alert"
	TypeSystem = "system"
)

// Notification priorities.
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

// Notification is one bell feed entry.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

// ServiceConfig configures the notification service.
type ServiceConfig struct {
	// MaxRetained caps the in-memory feed; older entries are dropped.
	MaxRetained int
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() *ServiceConfig {
	return &ServiceConfig{MaxRetained: 200}
}

// Service keeps a bounded in-memory notification feed and fans new entries
// out to subscribers without blocking the producer.
type Service struct {
	mu          sync.RWMutex
	items       []Notification
	subscribers []chan Notification
	maxRetained int
}

// NewService creates a notification service.
func NewService(config *ServiceConfig) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	return &Service{maxRetained: config.MaxRetained}
}

// Create records a notification and broadcasts it to subscribers.
func (s *Service) Create(notifType, priority, title, message string) (*Notification, error) {
	n := Notification{
		ID:        uuid.NewString(),
		Type:      notifType,
		Priority:  priority,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	s.items = append(s.items, n)
	if len(s.items) > s.maxRetained {
		s.items = s.items[len(s.items)-s.maxRetained:]
	}
	subscribers := make([]chan Notification, len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, ch := range subscribers {
		select {
		case ch <- n:
		default:
			// Slow subscriber; drop rather than block alert delivery.
		}
	}
	return &n, nil
}

// CreateAndBroadcast records a high-priority alert notification. It
// satisfies the alerting package's NotificationCreator interface.
func (s *Service) CreateAndBroadcast(title, message string) error {
	_, err := s.Create(TypeAlert, PriorityHigh, title, message)
	return err
}

// List returns the newest notifications, most recent first.
func (s *Service) List(limit int) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.items)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Notification, limit)
	for i := range limit {
		out[i] = s.items[n-1-i]
	}
	return out
}

// Subscribe returns a channel receiving new notifications and a cancel
// function that must be called to release it.
func (s *Service) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, 16)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub == ch {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}
