package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// DecimalHours keeps the historical display convention: hour count before the
// point, leftover minutes after it. 90 minutes is "1.30", not 1.5 hours.
func TestDecimalHours(t *testing.T) {
	assert.Equal(t, "0.00", DecimalHours(0))
	assert.Equal(t, "0.45", DecimalHours(45))
	assert.Equal(t, "1.00", DecimalHours(60))
	assert.Equal(t, "1.30", DecimalHours(90))
	assert.Equal(t, "2.05", DecimalHours(125))
}
