package http

import (
	"log/slog"
	"sync"
)

// AllTopics receives every broadcast.
const AllTopics = "*"

// StreamManager fans replay results out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // topic -> set of channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for topic. The returned func
// unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(topic string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan<- string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[topic]; ok {
			if _, live := subs[ch]; !live {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, topic)
			}
		}
	}
}

// Broadcast sends msg to subscribers of topic and of AllTopics.
func (sm *StreamManager) Broadcast(topic, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, t := range []string{topic, AllTopics} {
		for ch := range sm.subscribers[t] {
			select {
			case ch <- msg:
			default:
				// Slow client.
				sm.logger.Warn("SSE: client buffer full, dropping message", "topic", t)
			}
		}
		if topic == AllTopics {
			break
		}
	}
}
