package market

// EventType identifies the three per-step events of the exchange.
// The constants are declared in execution order, so within one step a lower
// value runs first.
type EventType uint8

const (
	EventTypeTick EventType = iota
	EventTypeExchange
	EventTypeTock
)

var eventTypeNames = [...]string{
	EventTypeTick:     "Tick",
	EventTypeExchange: "Exchange",
	EventTypeTock:     "Tock",
}

func (t EventType) String() string {
	if int(t) >= len(eventTypeNames) {
		return "Unknown"
	}
	return eventTypeNames[t]
}
