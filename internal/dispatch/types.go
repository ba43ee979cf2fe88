package dispatch

import (
	"time"

	"github.com/google/uuid"

	"github.com/juvoapp/juvo-backend/pkg/enums"
)

// NotificationResult captures the outcome of one push attempt toward a
// candidate driver.
type NotificationResult struct {
	DriverUserID uuid.UUID
	Token        string
	Outcome      enums.DispatchOutcome
	SentAt       time.Time
	Err          error
}

// OrderEvent is the JSON payload carried on the order events topic.
type OrderEvent struct {
	EventID uuid.UUID       `json:"event_id"`
	Type    enums.EventType `json:"type"`
	OrderID uuid.UUID       `json:"order_id"`
}
