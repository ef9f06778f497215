package cache

import (
	"fmt"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestBreaker(maxFailures, halfOpen int) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker(&CircuitBreakerConfig{
		MaxFailures:      maxFailures,
		Timeout:          time.Minute,
		HalfOpenMaxCalls: halfOpen,
	})
	cb.now = clock.Now
	return cb, clock
}

func fail() error    { return fmt.Errorf("operation failed") }
func succeed() error { return nil }

func TestCircuitBreakerBasicFlow(t *testing.T) {
	cb, _ := newTestBreaker(3, 2)

	if cb.GetState() != CircuitBreakerClosed {
		t.Errorf("Expected initial state to be Closed, got %v", cb.GetState())
	}

	if err := cb.Execute(succeed); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if cb.GetState() != CircuitBreakerClosed {
		t.Errorf("Expected state to remain Closed after success, got %v", cb.GetState())
	}
}

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb, _ := newTestBreaker(2, 2)

	cb.Execute(fail)
	if cb.GetState() != CircuitBreakerClosed {
		t.Errorf("Expected state to be Closed after first failure, got %v", cb.GetState())
	}

	cb.Execute(fail)
	if cb.GetState() != CircuitBreakerOpen {
		t.Errorf("Expected state to be Open after max failures, got %v", cb.GetState())
	}

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if err != ErrCircuitBreakerOpen {
		t.Errorf("Expected ErrCircuitBreakerOpen, got %v", err)
	}
	if called {
		t.Error("Expected function not to run while open")
	}
}

func TestCircuitBreakerSuccessResetsFailures(t *testing.T) {
	cb, _ := newTestBreaker(2, 1)

	cb.Execute(fail)
	cb.Execute(succeed)
	cb.Execute(fail)

	if cb.GetState() != CircuitBreakerClosed {
		t.Errorf("Expected non-consecutive failures to keep the breaker Closed, got %v", cb.GetState())
	}
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	cb, clock := newTestBreaker(1, 2)

	cb.Execute(fail)
	if cb.GetState() != CircuitBreakerOpen {
		t.Fatalf("Expected Open, got %v", cb.GetState())
	}

	clock.now = clock.now.Add(2 * time.Minute)

	if err := cb.Execute(succeed); err != nil {
		t.Fatalf("Expected trial call to pass, got %v", err)
	}
	if cb.GetState() != CircuitBreakerHalfOpen {
		t.Errorf("Expected HalfOpen after one trial success, got %v", cb.GetState())
	}

	cb.Execute(succeed)
	if cb.GetState() != CircuitBreakerClosed {
		t.Errorf("Expected Closed after enough trial successes, got %v", cb.GetState())
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(1, 2)

	cb.Execute(fail)
	clock.now = clock.now.Add(2 * time.Minute)

	cb.Execute(fail)
	if cb.GetState() != CircuitBreakerOpen {
		t.Errorf("Expected failure in HalfOpen to reopen, got %v", cb.GetState())
	}

	if err := cb.Execute(succeed); err != ErrCircuitBreakerOpen {
		t.Errorf("Expected the new timeout to apply, got %v", err)
	}
}

func TestCircuitBreakerStats(t *testing.T) {
	cb, _ := newTestBreaker(5, 1)
	cb.Execute(fail)

	stats := cb.GetStats()
	if stats["state"] != "closed" {
		t.Errorf("Expected state closed, got %v", stats["state"])
	}
	if stats["failure_count"] != 1 {
		t.Errorf("Expected failure_count 1, got %v", stats["failure_count"])
	}
}
