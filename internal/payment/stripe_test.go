package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountCents(t *testing.T) {
	assert.Equal(t, int64(2500), AmountCents(25))
	assert.Equal(t, int64(990), AmountCents(9.90))
	// 19.99 is not exactly representable; rounding keeps the cent amount.
	assert.Equal(t, int64(1999), AmountCents(19.99))
	assert.Equal(t, int64(0), AmountCents(0))
}
