package matchgateway

import (
	"strconv"
	"sync"
	"time"
)

type StreamEvent struct {
	EventID   string `json:"event_id"`
	Event     string `json:"event"`
	SessionID string `json:"session_id"`
	ServerTS  int64  `json:"server_ts"`
	Data      any    `json:"data"`
}

// EventBuffer keeps a bounded replayable history per session (and one
// public buffer per match) and fans events out to live SSE subscribers.
// Slow subscribers drop events rather than block the match timeline.
type EventBuffer struct {
	mu      sync.Mutex
	seq     int64
	cap     int
	log     []StreamEvent
	subs    map[int64]chan StreamEvent
	nextSub int64
	closed  bool
}

func NewEventBuffer(cap int) *EventBuffer {
	if cap <= 0 {
		cap = 256
	}
	return &EventBuffer{cap: cap, subs: map[int64]chan StreamEvent{}}
}

func (b *EventBuffer) Append(event, sessionID string, data any) StreamEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return StreamEvent{}
	}
	b.seq++
	ev := StreamEvent{
		EventID:   strconv.FormatInt(b.seq, 10),
		Event:     event,
		SessionID: sessionID,
		ServerTS:  time.Now().UnixMilli(),
		Data:      data,
	}
	b.log = append(b.log, ev)
	if len(b.log) > b.cap {
		b.log = b.log[len(b.log)-b.cap:]
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// ReplayAfter returns buffered events newer than the cursor; an empty or
// unparsable cursor replays everything still buffered. The cursor is the
// EventID a client last saw (SSE Last-Event-ID).
func (b *EventBuffer) ReplayAfter(cursor string) []StreamEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.log) == 0 {
		return nil
	}
	after, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil {
		after = 0
	}
	// Sequence numbers are dense, so the cut point is an offset from the
	// newest entry rather than a scan.
	newest := b.seq
	oldest := newest - int64(len(b.log)) + 1
	if after < oldest-1 {
		after = oldest - 1
	}
	if after >= newest {
		return nil
	}
	tail := b.log[after-oldest+1:]
	out := make([]StreamEvent, len(tail))
	copy(out, tail)
	return out
}

// Subscribe registers a live listener and returns its channel plus a
// cancel func that unregisters and closes it. Cancel is idempotent.
func (b *EventBuffer) Subscribe() (<-chan StreamEvent, func()) {
	ch := make(chan StreamEvent, 32)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.nextSub++
	id := b.nextSub
	b.subs[id] = ch
	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
}

func (b *EventBuffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}
