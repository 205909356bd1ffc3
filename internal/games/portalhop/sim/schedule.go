package sim

import "container/heap"

// EventKind tags a deferred trigger.
type EventKind int

const (
	EventGamble   EventKind = iota // apply a gamble outcome
	EventWaveLoop                  // start a wave's loop cue
	EventReinit                    // reinitialize the stage after death or clear
	EventFirework                  // launch one clear rocket
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventGamble:
		return "gamble"
	case EventWaveLoop:
		return "wave-loop"
	case EventReinit:
		return "reinit"
	case EventFirework:
		return "firework"
	default:
		return "unknown"
	}
}

// Event is a trigger due at an absolute simulation time. Life records the
// player life it was scheduled in; handlers re-validate it when it fires.
type Event struct {
	At   Time
	Kind EventKind
	Life uint64

	WaveID   uint64        // EventWaveLoop
	Outcome  GambleOutcome // EventGamble
	PickedAt Time          // EventGamble: effect expiries count from here
	Stage    int           // EventReinit
	Full     bool          // EventReinit

	seq uint64
}

// Scheduler is a min-heap of events ordered by time, then by insertion.
type Scheduler struct {
	q   eventQueue
	seq uint64
}

// Schedule queues an event.
func (s *Scheduler) Schedule(ev Event) {
	s.seq++
	ev.seq = s.seq
	heap.Push(&s.q, ev)
}

// PopDue removes and returns the earliest event due at or before now.
func (s *Scheduler) PopDue(now Time) (Event, bool) {
	if len(s.q) == 0 || s.q[0].At > now {
		return Event{}, false
	}
	return heap.Pop(&s.q).(Event), true
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	return len(s.q)
}

// Pending returns a copy of the pending events in no particular order.
func (s *Scheduler) Pending() []Event {
	out := make([]Event, len(s.q))
	copy(out, s.q)
	return out
}

// Clear drops every pending event.
func (s *Scheduler) Clear() {
	s.q = s.q[:0]
}

type eventQueue []Event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].At != q[j].At {
		return q[i].At < q[j].At
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(Event)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	*q = old[:n-1]
	return ev
}
