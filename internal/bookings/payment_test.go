package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedProcessorSucceeds(t *testing.T) {
	processor := NewSimulatedProcessor(0)

	txnID, err := processor.Process(context.Background(), 720, PaymentEsewa)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(txnID, "TXN"))
}

func TestSimulatedProcessorRejectsInvalidAmount(t *testing.T) {
	processor := NewSimulatedProcessor(0)

	_, err := processor.Process(context.Background(), 0, PaymentCard)
	assert.Error(t, err)

	_, err = processor.Process(context.Background(), -250, PaymentCard)
	assert.Error(t, err)
}

func TestSimulatedProcessorRejectsUnknownMethod(t *testing.T) {
	processor := NewSimulatedProcessor(0)

	_, err := processor.Process(context.Background(), 250, PaymentMethod("paypal"))
	assert.Error(t, err)
}

func TestSimulatedProcessorHonoursContext(t *testing.T) {
	processor := NewSimulatedProcessor(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := processor.Process(ctx, 250, PaymentCard)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
