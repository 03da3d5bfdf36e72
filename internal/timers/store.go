// Package timers owns the ordered, persisted list of countdown timers.
package timers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/HamzaEzziymy/timers/internal/storage"
	"github.com/HamzaEzziymy/timers/pkg/models"
	"go.uber.org/zap"
)

// DefaultKey is the storage key the list lives under
const DefaultKey = "timers"

// Store holds the timer list and writes every change through to storage.
// Each mutation and its persist run under one lock.
type Store struct {
	mu          sync.Mutex
	storage     storage.Storage
	key         string
	timers      []models.Timer
	logger      *zap.Logger
	subscribers map[int]func([]models.Timer)
	nextSubID   int
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for recoverable problems
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty Store over st. Call Load to read persisted timers.
func NewStore(st storage.Storage, key string, opts ...Option) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{
		storage:     st,
		key:         key,
		timers:      []models.Timer{},
		logger:      zap.NewNop(),
		subscribers: make(map[int]func([]models.Timer)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one. A missing or
// undecodable payload yields an empty list; only storage failures are returned.
func (s *Store) Load(ctx context.Context) ([]models.Timer, error) {
	payload, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load timers: %w", err)
	}

	list := []models.Timer{}
	if ok && payload != "" {
		decoded, err := Decode(payload)
		if err != nil {
			s.logger.Warn("Discarding unreadable timers payload",
				zap.String("key", s.key),
				zap.Int("bytes", len(payload)),
				zap.Error(err))
		} else {
			list = decoded
		}
	}

	s.mu.Lock()
	s.timers = list
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("Loaded timers", zap.String("key", s.key), zap.Int("count", len(snapshot)))
	return snapshot, nil
}

// Add validates and appends a new timer, then persists the list
func (s *Store) Add(ctx context.Context, title string, start, end time.Time) (models.Timer, error) {
	t, err := newTimer(title, start, end)
	if err != nil {
		return models.Timer{}, err
	}

	err = s.mutate(ctx, func(list []models.Timer) ([]models.Timer, bool) {
		return append(list, t), true
	})
	if err != nil {
		return models.Timer{}, err
	}

	s.logger.Info("Added timer",
		zap.String("title", t.Title),
		zap.Time("start", t.StartTime),
		zap.Time("end", t.EndTime))
	return t, nil
}

// AddFromStrings is Add for raw user input. Empty times count as missing.
func (s *Store) AddFromStrings(ctx context.Context, title, start, end string) (models.Timer, error) {
	if strings.TrimSpace(title) == "" {
		return models.Timer{}, errEmptyTitle
	}
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return models.Timer{}, errMissingTimes
	}

	startTime, err := ParseTime(start)
	if err != nil {
		return models.Timer{}, &ValidationError{Field: "startTime", Message: fmt.Sprintf("Start time %q is not a valid date and time", start)}
	}
	endTime, err := ParseTime(end)
	if err != nil {
		return models.Timer{}, &ValidationError{Field: "endTime", Message: fmt.Sprintf("End time %q is not a valid date and time", end)}
	}

	return s.Add(ctx, title, startTime, endTime)
}

// DeleteAt removes the timer at index. An out-of-range index is ignored and
// reported as false.
func (s *Store) DeleteAt(ctx context.Context, index int) (bool, error) {
	removed := false
	err := s.mutate(ctx, func(list []models.Timer) ([]models.Timer, bool) {
		if index < 0 || index >= len(list) {
			return list, false
		}
		removed = true
		next := make([]models.Timer, 0, len(list)-1)
		next = append(next, list[:index]...)
		return append(next, list[index+1:]...), true
	})
	if err != nil {
		return false, err
	}

	if removed {
		s.logger.Info("Deleted timer", zap.Int("index", index))
	} else {
		s.logger.Debug("Ignoring delete of missing timer", zap.Int("index", index))
	}
	return removed, nil
}

// Clear removes every timer. Asking the user first is the caller's job.
func (s *Store) Clear(ctx context.Context) error {
	err := s.mutate(ctx, func([]models.Timer) ([]models.Timer, bool) {
		return []models.Timer{}, true
	})
	if err != nil {
		return err
	}
	s.logger.Info("Cleared timers")
	return nil
}

// Timers returns a copy of the current list
func (s *Store) Timers() []models.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of timers
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Subscribe registers fn to receive the list after every successful change.
// fn runs on the mutating goroutine after the lock is released.
func (s *Store) Subscribe(fn func([]models.Timer)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// mutate applies change and persists the result. If persisting fails the
// previous list is kept so memory never runs ahead of storage.
func (s *Store) mutate(ctx context.Context, change func([]models.Timer) ([]models.Timer, bool)) error {
	s.mu.Lock()

	current := s.snapshotLocked()
	next, changed := change(current)
	if !changed {
		s.mu.Unlock()
		return nil
	}

	payload, err := Encode(next)
	if err == nil {
		err = s.storage.Set(ctx, s.key, payload)
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("Failed to persist timers", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("failed to persist timers: %w", err)
	}

	s.timers = next
	snapshot := s.snapshotLocked()
	subscribers := make([]func([]models.Timer), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
	return nil
}

func (s *Store) snapshotLocked() []models.Timer {
	out := make([]models.Timer, len(s.timers))
	copy(out, s.timers)
	return out
}

var (
	errEmptyTitle   = &ValidationError{Field: "title", Message: "Please enter a title for the timer"}
	errMissingTimes = &ValidationError{Field: "time", Message: "Please select both start and end times"}
	errEndNotAfter  = &ValidationError{Field: "endTime", Message: "End time must be after start time"}
)

func newTimer(title string, start, end time.Time) (models.Timer, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Timer{}, errEmptyTitle
	}
	if start.IsZero() || end.IsZero() {
		return models.Timer{}, errMissingTimes
	}
	if !end.After(start) {
		return models.Timer{}, errEndNotAfter
	}
	return models.Timer{Title: title, StartTime: start, EndTime: end}, nil
}

// IsValidationError reports whether err carries a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
