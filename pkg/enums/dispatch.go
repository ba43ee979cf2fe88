package enums

// DispatchOutcome records the result of a single push attempt.
type DispatchOutcome string

const (
	DispatchOutcomeSent   DispatchOutcome = "sent"
	DispatchOutcomeFailed DispatchOutcome = "failed"
)

// IsValid reports whether the value is a known DispatchOutcome.
func (d DispatchOutcome) IsValid() bool {
	return d == DispatchOutcomeSent || d == DispatchOutcomeFailed
}

// EventType identifies domain events carried over Pub/Sub.
type EventType string

const (
	// EventOrderReadyForDispatch is published when an order enters a
	// state that requires an independent delivery driver.
	EventOrderReadyForDispatch EventType = "order.ready_for_dispatch"
)
