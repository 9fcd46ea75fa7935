package market

import "container/heap"

// EventQueue holds the scheduled step events of an Exchange.
// Events run by step, then Tick → Exchange → Tock within a step, then in
// scheduling order for anything left tied.
type EventQueue struct {
	pending stepEvents
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.pending)
}

// Schedule queues e.
func (q *EventQueue) Schedule(e Event) {
	heap.Push(&q.pending, e)
}

// Next returns the event that runs next without removing it, or nil.
func (q *EventQueue) Next() Event {
	if len(q.pending) == 0 {
		return nil
	}
	return q.pending[0]
}

// PopNext removes and returns the event that runs next, or nil.
func (q *EventQueue) PopNext() Event {
	if len(q.pending) == 0 {
		return nil
	}
	return heap.Pop(&q.pending).(Event)
}

// runsBefore reports whether a is executed ahead of b.
func runsBefore(a, b Event) bool {
	switch {
	case a.Timestamp() != b.Timestamp():
		return a.Timestamp() < b.Timestamp()
	case a.Type() != b.Type():
		return a.Type() < b.Type()
	default:
		return a.EventID() < b.EventID()
	}
}

// stepEvents is the heap.Interface backing an EventQueue.
type stepEvents []Event

func (s stepEvents) Len() int           { return len(s) }
func (s stepEvents) Less(i, j int) bool { return runsBefore(s[i], s[j]) }
func (s stepEvents) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

func (s *stepEvents) Push(x any) {
	*s = append(*s, x.(Event))
}

func (s *stepEvents) Pop() any {
	old := *s
	last := old[len(old)-1]
	old[len(old)-1] = nil
	*s = old[:len(old)-1]
	return last
}
