package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling-app-server/internal/models"
)

func TestCapacityLedger(t *testing.T) {
	store := newMemStore()
	store.seed(models.Appointment{
		Email: "a@example.com", Date: "2026-03-12", Time: "10:00", PartySize: 1,
	})
	store.seed(models.Appointment{
		Email: "b@example.com", Date: "2026-03-12", Time: "10:00", IsGroup: true, PartySize: 30,
	})
	store.seed(models.Appointment{
		Email: "c@example.com", Date: "2026-03-12", Time: "11:00", PartySize: 1,
	})

	ledger := NewCapacityLedger(store)

	occupancy, err := ledger.OccupancyOf("2026-03-12", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 31, occupancy)

	remaining, err := ledger.RemainingSlots("2026-03-12", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 19, remaining)

	ok, err := ledger.CanAccommodate("2026-03-12", "10:00", 19)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ledger.CanAccommodate("2026-03-12", "10:00", 20)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCapacityLedgerIgnoresCancelled(t *testing.T) {
	store := newMemStore()
	seeded := store.seed(models.Appointment{
		Email: "a@example.com", Date: "2026-03-12", Time: "10:00", IsGroup: true, PartySize: 50,
	})
	require.NoError(t, store.SoftDelete(&seeded))

	ledger := NewCapacityLedger(store)

	occupancy, err := ledger.OccupancyOf("2026-03-12", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 0, occupancy)

	remaining, err := ledger.RemainingSlots("2026-03-12", "10:00")
	require.NoError(t, err)
	assert.Equal(t, SlotCapacity, remaining)
}

func TestCapacityLedgerEmptySlot(t *testing.T) {
	ledger := NewCapacityLedger(newMemStore())

	remaining, err := ledger.RemainingSlots("2026-03-12", "09:00")
	require.NoError(t, err)
	assert.Equal(t, SlotCapacity, remaining)
}
