package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/juvoapp/juvo-backend/internal/drivers"
	"github.com/juvoapp/juvo-backend/internal/orders"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	"github.com/juvoapp/juvo-backend/pkg/fcm"
	"github.com/juvoapp/juvo-backend/pkg/logger"
)

// PushSender delivers a single push message. Satisfied by fcm.Client.
type PushSender interface {
	Send(ctx context.Context, msg fcm.Message) error
}

// Notifier offers an order to candidate drivers one at a time.
type Notifier struct {
	sender PushSender
	logg   *logger.Logger
	now    func() time.Time
}

// NewNotifier wires the push sender into the sequential dispatch loop.
func NewNotifier(sender PushSender, logg *logger.Logger) (*Notifier, error) {
	if sender == nil {
		return nil, fmt.Errorf("push sender required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Notifier{
		sender: sender,
		logg:   logg,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// DispatchSequentially pushes the order to each candidate in turn, pausing
// delay between sends so earlier drivers get a head start on accepting.
// A send failure is recorded on the result and the loop continues; ctx
// cancellation stops the loop and returns the results gathered so far.
func (n *Notifier) DispatchSequentially(ctx context.Context, order orders.OrderDTO, title string, candidates []drivers.CandidateDriver, delay time.Duration) []NotificationResult {
	results := make([]NotificationResult, 0, len(candidates))

	for i, candidate := range candidates {
		if i > 0 && delay > 0 {
			if !n.pause(ctx, delay) {
				n.logg.Warn(n.logg.WithOrderID(ctx, order.ID.String()), "dispatch loop canceled before all drivers were notified")
				return results
			}
		}

		result := NotificationResult{
			DriverUserID: candidate.UserID,
			Token:        candidate.PushToken,
			SentAt:       n.now(),
		}

		err := n.sender.Send(ctx, fcm.Message{
			Token: candidate.PushToken,
			Title: title,
			Body:  "A new delivery is waiting for you. Open the app to accept it.",
			Data: map[string]string{
				"order_id":     order.ID.String(),
				"order_number": order.OrderNumber,
				"shop_id":      order.ShopID.String(),
				"event":        string(enums.EventOrderReadyForDispatch),
			},
		})
		if err != nil {
			result.Outcome = enums.DispatchOutcomeFailed
			result.Err = err
			n.logg.Error(
				n.logg.WithFields(ctx, map[string]any{
					"order_id":       order.ID.String(),
					"driver_user_id": candidate.UserID.String(),
				}),
				"push notification failed", err,
			)
		} else {
			result.Outcome = enums.DispatchOutcomeSent
		}

		results = append(results, result)
	}

	return results
}

// pause waits for the delay unless ctx is canceled first.
func (n *Notifier) pause(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
