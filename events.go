package steamlogin

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

type EventType uint8

const (
	EventDebug EventType = iota
	EventPolling
	EventTimeout
	EventRemoteInteraction
	EventAuthenticated
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventDebug:
		return "debug"
	case EventPolling:
		return "polling"
	case EventTimeout:
		return "timeout"
	case EventRemoteInteraction:
		return "remoteInteraction"
	case EventAuthenticated:
		return "authenticated"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type Event struct {
	Type        EventType         `json:"type"`
	At          time.Time         `json:"at"`
	AttemptID   string            `json:"attempt_id,omitempty"`
	AccountName string            `json:"account_name,omitempty"`
	SteamID     uint64            `json:"steam_id,omitempty"`
	Detail      string            `json:"detail,omitempty"`
	Code        string            `json:"code,omitempty"`
	Err         string            `json:"error,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type EventSink interface {
	Emit(ctx context.Context, event Event)
}

type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, Event) {}

type ChannelSink struct {
	events chan Event
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan Event, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(ctx context.Context, event Event) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
