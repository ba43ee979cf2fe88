package dispatch

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/juvoapp/juvo-backend/internal/drivers"
	"github.com/juvoapp/juvo-backend/internal/orders"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	"github.com/juvoapp/juvo-backend/pkg/fcm"
	"github.com/juvoapp/juvo-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

type fakeSender struct {
	sent    []fcm.Message
	sentAt  []time.Time
	failFor map[string]error
	onSend  func()
}

func (f *fakeSender) Send(ctx context.Context, msg fcm.Message) error {
	f.sent = append(f.sent, msg)
	f.sentAt = append(f.sentAt, time.Now())
	if f.onSend != nil {
		f.onSend()
	}
	if err, ok := f.failFor[msg.Token]; ok {
		return err
	}
	return nil
}

func candidateList(tokens ...string) []drivers.CandidateDriver {
	out := make([]drivers.CandidateDriver, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, drivers.CandidateDriver{UserID: uuid.New(), PushToken: token})
	}
	return out
}

func testOrder() orders.OrderDTO {
	return orders.OrderDTO{
		ID:          uuid.New(),
		OrderNumber: "JV-1001",
		ShopID:      uuid.New(),
	}
}

func TestDispatchSequentiallyPreservesOrderAndDelay(t *testing.T) {
	sender := &fakeSender{}
	notifier, err := NewNotifier(sender, testLogger())
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	delay := 20 * time.Millisecond
	started := time.Now()
	results := notifier.DispatchSequentially(context.Background(), testOrder(), "Shop: order JV-1001", candidateList("a", "b", "c"), delay)
	elapsed := time.Since(started)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"a", "b", "c"} {
		if sender.sent[i].Token != want {
			t.Fatalf("send %d went to %q, want %q", i, sender.sent[i].Token, want)
		}
		if results[i].Outcome != enums.DispatchOutcomeSent {
			t.Fatalf("result %d outcome %q", i, results[i].Outcome)
		}
	}
	if minimum := 2 * delay; elapsed < minimum {
		t.Fatalf("loop finished in %v, expected at least %v of spacing", elapsed, minimum)
	}
}

func TestDispatchSequentiallyContinuesPastFailures(t *testing.T) {
	sender := &fakeSender{failFor: map[string]error{"b": errors.New("unregistered token")}}
	notifier, err := NewNotifier(sender, testLogger())
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	results := notifier.DispatchSequentially(context.Background(), testOrder(), "title", candidateList("a", "b", "c"), 0)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].Outcome != enums.DispatchOutcomeFailed || results[1].Err == nil {
		t.Fatalf("middle result should fail, got %+v", results[1])
	}
	if results[0].Outcome != enums.DispatchOutcomeSent || results[2].Outcome != enums.DispatchOutcomeSent {
		t.Fatal("failure must not stop the loop")
	}
}

func TestDispatchSequentiallyGatewayOutage(t *testing.T) {
	outage := errors.New("fcm unreachable")
	sender := &fakeSender{failFor: map[string]error{"a": outage, "b": outage}}
	notifier, err := NewNotifier(sender, testLogger())
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	results := notifier.DispatchSequentially(context.Background(), testOrder(), "title", candidateList("a", "b"), 0)

	for _, result := range results {
		if result.Outcome != enums.DispatchOutcomeFailed {
			t.Fatalf("expected all failures, got %+v", result)
		}
	}
}

func TestDispatchSequentiallyStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sender := &fakeSender{onSend: cancel}
	notifier, err := NewNotifier(sender, testLogger())
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	results := notifier.DispatchSequentially(ctx, testOrder(), "title", candidateList("a", "b", "c"), time.Hour)

	if len(results) != 1 {
		t.Fatalf("expected loop to stop after cancellation, got %d results", len(results))
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected a single send, got %d", len(sender.sent))
	}
}

func TestDispatchSequentiallyEmptyCandidates(t *testing.T) {
	sender := &fakeSender{}
	notifier, err := NewNotifier(sender, testLogger())
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	results := notifier.DispatchSequentially(context.Background(), testOrder(), "title", nil, time.Second)
	if len(results) != 0 || len(sender.sent) != 0 {
		t.Fatal("nothing should be sent without candidates")
	}
}
