package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling-app-server/internal/models"
)

func TestProximityGuardWindowEdges(t *testing.T) {
	tests := []struct {
		name    string
		booked  string
		slot    string
		tooNear bool
	}{
		{"same slot", "10:00", "10:00", true},
		{"59 minutes after", "10:59", "10:00", true},
		{"one hour after", "11:00", "10:00", false},
		{"59 minutes before", "09:01", "10:00", true},
		{"one hour before", "09:00", "10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.seed(models.Appointment{
				Email: "maria@example.com", CPF: "52998224725",
				Date: "2026-03-12", Time: tt.booked, PartySize: 1,
			})
			guard := NewProximityGuard(store)

			nearby, err := guard.HasNearbyAppointment("2026-03-12", tt.slot,
				Identity{Kind: IdentityEmail, Value: "maria@example.com"})
			require.NoError(t, err)
			assert.Equal(t, tt.tooNear, nearby)
		})
	}
}

func TestProximityGuardClampsAtMidnight(t *testing.T) {
	store := newMemStore()
	store.seed(models.Appointment{
		Email: "maria@example.com", Date: "2026-03-12", Time: "00:00", PartySize: 1,
	})
	guard := NewProximityGuard(store)

	nearby, err := guard.HasNearbyAppointment("2026-03-12", "00:30",
		Identity{Kind: IdentityEmail, Value: "maria@example.com"})
	require.NoError(t, err)
	assert.True(t, nearby)
}

func TestProximityGuardMatchesByIdentity(t *testing.T) {
	store := newMemStore()
	store.seed(models.Appointment{
		Email: "maria@example.com", CPF: "52998224725",
		Date: "2026-03-12", Time: "10:00", PartySize: 1,
	})
	guard := NewProximityGuard(store)

	// A different email never matches, even in the same slot.
	nearby, err := guard.HasNearbyAppointment("2026-03-12", "10:00",
		Identity{Kind: IdentityEmail, Value: "outro@example.com"})
	require.NoError(t, err)
	assert.False(t, nearby)

	// CPF identity matches the stored CPF regardless of email.
	nearby, err = guard.HasNearbyAppointment("2026-03-12", "10:00",
		Identity{Kind: IdentityCPF, Value: "52998224725"})
	require.NoError(t, err)
	assert.True(t, nearby)

	// Another date is a different window entirely.
	nearby, err = guard.HasNearbyAppointment("2026-03-13", "10:00",
		Identity{Kind: IdentityEmail, Value: "maria@example.com"})
	require.NoError(t, err)
	assert.False(t, nearby)
}

func TestIdentityOfPrefersEmail(t *testing.T) {
	id := IdentityOf("maria@example.com", "52998224725")
	assert.Equal(t, Identity{Kind: IdentityEmail, Value: "maria@example.com"}, id)

	id = IdentityOf("", "52998224725")
	assert.Equal(t, Identity{Kind: IdentityCPF, Value: "52998224725"}, id)
}
