package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Wire values are pinned to the CHECK constraints in migrations/001_init.sql:
// a drifting constant would violate the schema on the first write.
func TestEnumWireValuesMatchSchema(t *testing.T) {
	assert.Equal(t, "upcoming", string(StatusUpcoming))
	assert.Equal(t, "completed", string(StatusCompleted))
	assert.Equal(t, "cancelled", string(StatusCancelled))
	assert.Equal(t, "no_show", string(StatusNoShow))

	assert.Equal(t, "pending", string(PaymentPending))
	assert.Equal(t, "paid", string(PaymentPaid))

	assert.Equal(t, "pay_at_salon", string(PayAtSalon))
	assert.Equal(t, "pay_online", string(PayOnline))
}
