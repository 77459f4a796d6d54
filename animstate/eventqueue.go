package animstate

import (
	"github.com/mogaika/rig2d/rig"
)

// EventType tags a playback notification.
type EventType int

const (
	// EventStart fires when an entry becomes current on its track.
	EventStart EventType = iota
	// EventInterrupt fires when a new entry starts mixing over this one.
	EventInterrupt
	// EventEnd fires when an entry will never be applied again.
	EventEnd
	// EventDispose fires after End; the entry must not be used afterwards.
	EventDispose
	// EventComplete fires each time playback crosses the animation end.
	EventComplete
	// EventEvent fires for user events keyed in the animation.
	EventEvent
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventInterrupt:
		return "interrupt"
	case EventEnd:
		return "end"
	case EventDispose:
		return "dispose"
	case EventComplete:
		return "complete"
	case EventEvent:
		return "event"
	}
	return "unknown"
}

// Listener receives playback notifications. event is non-nil only for
// EventEvent.
type Listener func(eventType EventType, entry *TrackEntry, event *rig.Event)

type queuedEvent struct {
	eventType EventType
	entry     *TrackEntry
	event     *rig.Event
}

// eventQueue defers listener notification until the state is done
// mutating its tracks, so listeners observe a consistent state and may
// themselves start or clear animations.
type eventQueue struct {
	state         *State
	events        []queuedEvent
	drainDisabled bool
}

func (q *eventQueue) start(entry *TrackEntry) {
	q.events = append(q.events, queuedEvent{eventType: EventStart, entry: entry})
	q.state.animationsChanged = true
}

func (q *eventQueue) interrupt(entry *TrackEntry) {
	q.events = append(q.events, queuedEvent{eventType: EventInterrupt, entry: entry})
}

func (q *eventQueue) end(entry *TrackEntry) {
	q.events = append(q.events, queuedEvent{eventType: EventEnd, entry: entry})
	q.state.animationsChanged = true
}

func (q *eventQueue) dispose(entry *TrackEntry) {
	q.events = append(q.events, queuedEvent{eventType: EventDispose, entry: entry})
}

func (q *eventQueue) complete(entry *TrackEntry) {
	q.events = append(q.events, queuedEvent{eventType: EventComplete, entry: entry})
}

func (q *eventQueue) event(entry *TrackEntry, event *rig.Event) {
	q.events = append(q.events, queuedEvent{eventType: EventEvent, entry: entry, event: event})
}

func (q *eventQueue) drain() {
	if q.drainDisabled {
		return
	}
	q.drainDisabled = true

	// Listeners may queue more events while draining.
	for i := 0; i < len(q.events); i++ {
		qe := q.events[i]
		switch qe.eventType {
		case EventEnd:
			q.notify(qe)
			// An ended entry is always disposed as well.
			q.notify(queuedEvent{eventType: EventDispose, entry: qe.entry})
		default:
			q.notify(qe)
		}
	}
	q.events = q.events[:0]

	q.drainDisabled = false
}

func (q *eventQueue) notify(qe queuedEvent) {
	if qe.entry.Listener != nil {
		qe.entry.Listener(qe.eventType, qe.entry, qe.event)
	}
	for _, listener := range q.state.listeners {
		listener(qe.eventType, qe.entry, qe.event)
	}
}

func (q *eventQueue) clear() {
	q.events = q.events[:0]
}
