package debugapi

import "sync"

// EventType tags a BroadcastEvent's payload shape.
type EventType string

const (
	EventState     EventType = "state"
	EventOutput    EventType = "output"
	EventExecution EventType = "event"
)

// BroadcastEvent is one message fanned out to subscribed WebSocket
// clients.
type BroadcastEvent struct {
	Type      EventType              `json:"type"`
	SessionID string                 `json:"sessionId"`
	Data      map[string]interface{} `json:"data"`
}

// Subscription is a client's filtered view of the broadcast stream.
type Subscription struct {
	SessionID  string
	EventTypes map[EventType]bool
	Channel    chan BroadcastEvent
}

// Broadcaster fans debug session events out to any number of
// WebSocket clients, each with its own session/type filter.
type Broadcaster struct {
	mu            sync.RWMutex
	subscriptions map[*Subscription]bool
	broadcast     chan BroadcastEvent
	register      chan *Subscription
	unregister    chan *Subscription
	done          chan struct{}
}

// NewBroadcaster starts a Broadcaster's dispatch loop.
func NewBroadcaster() *Broadcaster {
	b := &Broadcaster{
		subscriptions: make(map[*Subscription]bool),
		broadcast:     make(chan BroadcastEvent, 256),
		register:      make(chan *Subscription),
		unregister:    make(chan *Subscription),
		done:          make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Broadcaster) run() {
	for {
		select {
		case sub := <-b.register:
			b.mu.Lock()
			b.subscriptions[sub] = true
			b.mu.Unlock()

		case sub := <-b.unregister:
			b.mu.Lock()
			if b.subscriptions[sub] {
				delete(b.subscriptions, sub)
				close(sub.Channel)
			}
			b.mu.Unlock()

		case event := <-b.broadcast:
			b.mu.RLock()
			for sub := range b.subscriptions {
				if sub.SessionID != "" && sub.SessionID != event.SessionID {
					continue
				}
				if len(sub.EventTypes) > 0 && !sub.EventTypes[event.Type] {
					continue
				}
				select {
				case sub.Channel <- event:
				default:
				}
			}
			b.mu.RUnlock()

		case <-b.done:
			b.mu.Lock()
			for sub := range b.subscriptions {
				close(sub.Channel)
			}
			b.subscriptions = make(map[*Subscription]bool)
			b.mu.Unlock()
			return
		}
	}
}

// Subscribe registers a filtered subscription. sessionID == "" means
// all sessions; an empty eventTypes means all event types.
func (b *Broadcaster) Subscribe(sessionID string, eventTypes []EventType) *Subscription {
	m := make(map[EventType]bool, len(eventTypes))
	for _, et := range eventTypes {
		m[et] = true
	}
	sub := &Subscription{SessionID: sessionID, EventTypes: m, Channel: make(chan BroadcastEvent, 64)}
	b.register <- sub
	return sub
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(sub *Subscription) { b.unregister <- sub }

// Broadcast enqueues an event for dispatch, dropping it if the
// broadcaster's internal queue is full.
func (b *Broadcaster) Broadcast(event BroadcastEvent) {
	select {
	case b.broadcast <- event:
	default:
	}
}

// BroadcastOutput sends a program-output event.
func (b *Broadcaster) BroadcastOutput(sessionID, line string) {
	b.Broadcast(BroadcastEvent{Type: EventOutput, SessionID: sessionID, Data: map[string]interface{}{"line": line}})
}

// BroadcastState sends a debugger-state-changed event (current line,
// running flag, and similar).
func (b *Broadcaster) BroadcastState(sessionID string, data map[string]interface{}) {
	b.Broadcast(BroadcastEvent{Type: EventState, SessionID: sessionID, Data: data})
}

// BroadcastExecutionEvent sends a named event (breakpoint hit,
// watchpoint fired, halted) with extra details.
func (b *Broadcaster) BroadcastExecutionEvent(sessionID, name string, details map[string]interface{}) {
	data := map[string]interface{}{"event": name}
	for k, v := range details {
		data[k] = v
	}
	b.Broadcast(BroadcastEvent{Type: EventExecution, SessionID: sessionID, Data: data})
}

// Close shuts the broadcaster down, closing every open subscription.
func (b *Broadcaster) Close() { close(b.done) }

// SubscriptionCount reports how many clients are currently subscribed.
func (b *Broadcaster) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}
