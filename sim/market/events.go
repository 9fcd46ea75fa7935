package market

// Event is one phase of a simulation step.
type Event interface {
	Timestamp() int64
	EventID() uint64
	Type() EventType
	Execute(x *Exchange) error
}

// BaseEvent provides common event fields
type BaseEvent struct {
	timestamp int64
	eventID   uint64
	eventType EventType
}

func newBaseEvent(timestamp int64, eventType EventType, eventID uint64) BaseEvent {
	return BaseEvent{
		timestamp: timestamp,
		eventID:   eventID,
		eventType: eventType,
	}
}

func (e *BaseEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *BaseEvent) EventID() uint64 {
	return e.eventID
}

func (e *BaseEvent) Type() EventType {
	return e.eventType
}

// TickEvent advances every trader's state at the start of a step.
type TickEvent struct {
	BaseEvent
}

func NewTickEvent(timestamp int64, eventID uint64) *TickEvent {
	return &TickEvent{BaseEvent: newBaseEvent(timestamp, EventTypeTick, eventID)}
}

func (e *TickEvent) Execute(x *Exchange) error {
	return x.handleTick(e)
}

// ExchangeEvent collects portfolios and clears the market.
type ExchangeEvent struct {
	BaseEvent
}

func NewExchangeEvent(timestamp int64, eventID uint64) *ExchangeEvent {
	return &ExchangeEvent{BaseEvent: newBaseEvent(timestamp, EventTypeExchange, eventID)}
}

func (e *ExchangeEvent) Execute(x *Exchange) error {
	return x.handleExchange(e)
}

// TockEvent lets every trader act on the step's trades and schedules the next step.
type TockEvent struct {
	BaseEvent
}

func NewTockEvent(timestamp int64, eventID uint64) *TockEvent {
	return &TockEvent{BaseEvent: newBaseEvent(timestamp, EventTypeTock, eventID)}
}

func (e *TockEvent) Execute(x *Exchange) error {
	return x.handleTock(e)
}
