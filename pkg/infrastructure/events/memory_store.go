package events

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrEmptyStream is returned when an event is appended without a run id
var ErrEmptyStream = errors.New("events: stream id required")

// InMemoryEventStore keeps analysis run streams in process memory. With a
// retention limit the oldest runs are evicted first, so positions passed to
// ReadAllEvents refer to the retained log. Subscribers are notified
// synchronously after the append is committed, in subscription order.
type InMemoryEventStore struct {
	mu       sync.RWMutex
	runs     map[string][]Event
	runOrder []string
	log      []Event
	handlers map[string][]EventHandler
	maxRuns  int
	logger   *zap.Logger
}

// Verify interface compliance
var _ EventStore = (*InMemoryEventStore)(nil)

// StoreOption configures an InMemoryEventStore
type StoreOption func(*InMemoryEventStore)

// WithMaxRuns keeps at most n runs; n <= 0 keeps every run
func WithMaxRuns(n int) StoreOption {
	return func(s *InMemoryEventStore) { s.maxRuns = n }
}

// NewInMemoryEventStore creates an empty store; a nil logger discards handler errors
func NewInMemoryEventStore(logger *zap.Logger, opts ...StoreOption) *InMemoryEventStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &InMemoryEventStore{
		runs:     make(map[string][]Event),
		handlers: make(map[string][]EventHandler),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AppendEvent stores event as the next version of run runID
func (s *InMemoryEventStore) AppendEvent(runID string, event Event) error {
	if runID == "" {
		return ErrEmptyStream
	}

	s.mu.Lock()
	stream, known := s.runs[runID]
	if !known {
		s.runOrder = append(s.runOrder, runID)
	}
	stored := BaseEvent{
		EventType:    event.Type(),
		Stream:       runID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(stream) + 1,
	}
	s.runs[runID] = append(stream, stored)
	s.log = append(s.log, stored)
	s.evict()
	handlers := append([]EventHandler(nil), s.handlers[stored.EventType]...)
	s.mu.Unlock()

	for _, h := range handlers {
		if !h.CanHandle(stored.EventType) {
			continue
		}
		if err := h.Handle(stored); err != nil {
			s.logger.Warn("event handler failed",
				zap.String("event_type", stored.EventType),
				zap.String("run_id", runID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// evict drops the oldest runs beyond the retention limit. Callers hold mu.
func (s *InMemoryEventStore) evict() {
	if s.maxRuns <= 0 || len(s.runOrder) <= s.maxRuns {
		return
	}

	dropped := make(map[string]bool, len(s.runOrder)-s.maxRuns)
	for len(s.runOrder) > s.maxRuns {
		id := s.runOrder[0]
		s.runOrder = s.runOrder[1:]
		delete(s.runs, id)
		dropped[id] = true
	}

	kept := make([]Event, 0, len(s.log))
	for _, e := range s.log {
		if !dropped[e.StreamID()] {
			kept = append(kept, e)
		}
	}
	s.log = kept
}

// ReadEvents returns the events of run runID from version fromVersion on
func (s *InMemoryEventStore) ReadEvents(runID string, fromVersion int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.runs[runID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(stream) {
		return []Event{}, nil
	}
	return append([]Event(nil), stream[fromVersion-1:]...), nil
}

// ReadAllEvents returns the retained log from fromPosition (0-based) on
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.log) {
		return []Event{}, nil
	}
	return append([]Event(nil), s.log[fromPosition:]...), nil
}

// Runs returns the retained run ids, oldest first
func (s *InMemoryEventStore) Runs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.runOrder...)
}

// Subscribe registers handler for each of eventTypes
func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, eventType := range eventTypes {
		s.handlers[eventType] = append(s.handlers[eventType], handler)
	}
	return nil
}

// Unsubscribe removes handler from every event type
func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for eventType, handlers := range s.handlers {
		kept := make([]EventHandler, 0, len(handlers))
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.handlers[eventType] = kept
	}
	return nil
}
