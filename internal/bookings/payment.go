package bookings

import (
	"context"
	"fmt"
	"time"
)

// PaymentProcessor charges for a booking and returns a transaction id
type PaymentProcessor interface {
	Process(ctx context.Context, amount int, method PaymentMethod) (string, error)
}

// simulatedProcessor stands in for a real gateway: it waits a fixed delay
// and always succeeds. The delay exists so the checkout flow exercises the
// same asynchronous shape a real gateway would have.
type simulatedProcessor struct {
	delay time.Duration
}

func NewSimulatedProcessor(delay time.Duration) PaymentProcessor {
	return &simulatedProcessor{delay: delay}
}

func (p *simulatedProcessor) Process(ctx context.Context, amount int, method PaymentMethod) (string, error) {
	if !method.IsValid() {
		return "", fmt.Errorf("unsupported payment method: %s", method)
	}
	if amount <= 0 {
		return "", fmt.Errorf("invalid payment amount: %d", amount)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(p.delay):
	}

	return fmt.Sprintf("TXN%d", time.Now().UnixNano()), nil
}
