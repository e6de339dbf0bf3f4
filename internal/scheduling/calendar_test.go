package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling-app-server/internal/models"
)

func TestCalendarPolicyMondays(t *testing.T) {
	policy := NewCalendarPolicy(newMemStore())

	ok, reason, err := policy.IsBookable(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, ReasonMonday, reason)

	ok, reason, err = policy.IsBookable(time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestCalendarPolicyClosedDays(t *testing.T) {
	tests := []struct {
		name     string
		category models.ClosedDayCategory
		bookable bool
	}{
		{"full block", models.CategoryFullBlock, false},
		{"maintenance", models.CategoryMaintenance, false},
		{"holiday", models.CategoryHoliday, false},
		{"partial block", models.CategoryPartialBlock, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.closedDays = append(store.closedDays, models.ClosedDay{
				Date:     "2026-03-12",
				Category: tt.category,
			})
			policy := NewCalendarPolicy(store)

			ok, reason, err := policy.IsBookable(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			assert.Equal(t, tt.bookable, ok)
			if !tt.bookable {
				assert.Equal(t, ReasonClosedDay, reason)
			}
		})
	}
}
