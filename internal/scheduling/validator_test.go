package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling-app-server/internal/models"
)

// The clock is pinned to a Tuesday so the default booking date two days out
// lands on a Thursday.
func testClock() *fixedClock {
	return &fixedClock{now: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)}
}

func validSubmission() Submission {
	return Submission{
		Name:        "Maria da Silva",
		Email:       " Maria.Silva@Example.com ",
		CPF:         "529.982.247-25",
		RG:          "2001234567",
		Phone:       "(85) 99999-8888",
		Nationality: "brasileiro",
		Date:        "2026-03-12",
		Time:        "10:00",
		IsGroup:     false,
		PartySize:   1,
	}
}

func TestValidateAcceptsAndNormalizes(t *testing.T) {
	v := NewValidator(newMemStore(), testClock())

	sub := validSubmission()
	sub.Time = "9:00"

	vs, errs, err := v.Validate(sub)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.NotNil(t, vs)

	assert.Equal(t, "maria.silva@example.com", vs.Email)
	assert.Equal(t, "52998224725", vs.CPF)
	assert.Equal(t, "85999998888", vs.Phone)
	assert.Equal(t, "09:00", vs.Time)
}

func TestValidateRequesterFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Submission)
		field  string
	}{
		{"missing name", func(s *Submission) { s.Name = "  " }, "name"},
		{"missing email", func(s *Submission) { s.Email = "" }, "email"},
		{"malformed email", func(s *Submission) { s.Email = "not-an-email" }, "email"},
		{"short cpf", func(s *Submission) { s.CPF = "1234567890" }, "cpf"},
		{"bad cpf check digits", func(s *Submission) { s.CPF = "52998224724" }, "cpf"},
		{"repeated digit cpf", func(s *Submission) { s.CPF = "11111111111" }, "cpf"},
		{"missing rg", func(s *Submission) { s.RG = "" }, "rg"},
		{"oversized rg", func(s *Submission) { s.RG = "123456789012345678901" }, "rg"},
		{"short phone", func(s *Submission) { s.Phone = "859999" }, "phone"},
		{"long phone", func(s *Submission) { s.Phone = "858888877777666" }, "phone"},
		{"missing nationality", func(s *Submission) { s.Nationality = "" }, "nationality"},
		{"unknown nationality", func(s *Submission) { s.Nationality = "marciano" }, "nationality"},
		{"unknown group nationality", func(s *Submission) { s.GroupNationality = "marciano" }, "groupNationality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(newMemStore(), testClock())
			sub := validSubmission()
			tt.mutate(&sub)

			vs, errs, err := v.Validate(sub)
			require.NoError(t, err)
			assert.Nil(t, vs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestValidateAccumulatesErrors(t *testing.T) {
	v := NewValidator(newMemStore(), testClock())

	vs, errs, err := v.Validate(Submission{})
	require.NoError(t, err)
	assert.Nil(t, vs)

	for _, field := range []string{"name", "email", "cpf", "rg", "phone", "nationality", "date", "time"} {
		assert.Contains(t, errs, field, "expected an error for %s", field)
	}
}

func TestValidateTimeRules(t *testing.T) {
	tests := []struct {
		name string
		slot string
		ok   bool
	}{
		{"first slot", "09:00", true},
		{"last slot", "17:00", true},
		{"unpadded hour", "9:00", true},
		{"half hour", "10:30", false},
		{"before opening", "08:00", false},
		{"after closing", "18:00", false},
		{"not a time", "abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(newMemStore(), testClock())
			sub := validSubmission()
			sub.Time = tt.slot

			_, errs, err := v.Validate(sub)
			require.NoError(t, err)
			if tt.ok {
				assert.NotContains(t, errs, "time")
			} else {
				assert.Contains(t, errs, "time")
			}
		})
	}
}

func TestValidatePartySize(t *testing.T) {
	tests := []struct {
		name    string
		isGroup bool
		size    int
		ok      bool
	}{
		{"individual of one", false, 1, true},
		{"individual of two", false, 2, false},
		{"zero", false, 0, false},
		{"group minimum", true, 10, true},
		{"group maximum", true, 50, true},
		{"group too small", true, 9, false},
		{"group too large", true, 51, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(newMemStore(), testClock())
			sub := validSubmission()
			sub.IsGroup = tt.isGroup
			sub.PartySize = tt.size
			if tt.isGroup {
				sub.GroupNationality = "brasileiro"
			}

			_, errs, err := v.Validate(sub)
			require.NoError(t, err)
			if tt.ok {
				assert.NotContains(t, errs, "partySize")
			} else {
				assert.Contains(t, errs, "partySize")
			}
		})
	}
}

func TestValidateLeadTime(t *testing.T) {
	tests := []struct {
		name string
		date string
		ok   bool
	}{
		{"tomorrow", "2026-03-11", true},
		{"two days out", "2026-03-12", true},
		{"same day", "2026-03-10", false},
		{"past date", "2026-03-09", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(newMemStore(), testClock())
			sub := validSubmission()
			sub.Date = tt.date

			_, errs, err := v.Validate(sub)
			require.NoError(t, err)
			if tt.ok {
				assert.NotContains(t, errs, "date")
			} else {
				assert.Contains(t, errs, "date")
			}
		})
	}
}

func TestValidateRejectsMondays(t *testing.T) {
	v := NewValidator(newMemStore(), testClock())
	sub := validSubmission()
	sub.Date = "2026-03-16" // a Monday

	_, errs, err := v.Validate(sub)
	require.NoError(t, err)
	require.Contains(t, errs, "date")
	assert.Contains(t, errs["date"][0], "Mondays")
}

func TestValidateClosedDays(t *testing.T) {
	tests := []struct {
		name     string
		category models.ClosedDayCategory
		ok       bool
	}{
		{"full block", models.CategoryFullBlock, false},
		{"maintenance", models.CategoryMaintenance, false},
		{"holiday", models.CategoryHoliday, false},
		{"partial block is informational", models.CategoryPartialBlock, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.closedDays = append(store.closedDays, models.ClosedDay{
				Date:     "2026-03-12",
				Category: tt.category,
			})

			v := NewValidator(store, testClock())
			_, errs, err := v.Validate(validSubmission())
			require.NoError(t, err)
			if tt.ok {
				assert.NotContains(t, errs, "date")
			} else {
				assert.Contains(t, errs, "date")
			}
		})
	}
}

func TestValidateCapacity(t *testing.T) {
	store := newMemStore()
	store.seed(models.Appointment{
		Name: "Escola Municipal", Email: "escola@example.com", CPF: "11144477735",
		Date: "2026-03-12", Time: "10:00", IsGroup: true, PartySize: 45,
	})

	v := NewValidator(store, testClock())

	// 45 booked, an individual still fits.
	_, errs, err := v.Validate(validSubmission())
	require.NoError(t, err)
	assert.NotContains(t, errs, "partySize")

	// A group of ten does not.
	sub := validSubmission()
	sub.IsGroup = true
	sub.PartySize = 10
	sub.GroupNationality = "brasileiro"

	_, errs, err = v.Validate(sub)
	require.NoError(t, err)
	require.Contains(t, errs, "partySize")
	assert.Contains(t, errs["partySize"][0], "45 people already booked")
	assert.Contains(t, errs["partySize"][0], "5 spots remaining")
}

func TestValidateProximity(t *testing.T) {
	store := newMemStore()
	store.seed(models.Appointment{
		Name: "Maria da Silva", Email: "maria.silva@example.com", CPF: "52998224725",
		Date: "2026-03-12", Time: "10:00", PartySize: 1,
	})

	v := NewValidator(store, testClock())

	// Same requester, same slot: too close.
	_, errs, err := v.Validate(validSubmission())
	require.NoError(t, err)
	assert.Contains(t, errs, "time")

	// Same requester, a full hour apart: allowed.
	sub := validSubmission()
	sub.Time = "11:00"
	_, errs, err = v.Validate(sub)
	require.NoError(t, err)
	assert.NotContains(t, errs, "time")

	// Different email in the same slot: identity does not match, so the
	// earlier booking is irrelevant even though capacity remains.
	sub = validSubmission()
	sub.Email = "outro@example.com"
	_, errs, err = v.Validate(sub)
	require.NoError(t, err)
	assert.NotContains(t, errs, "time")
}

func TestValidCPF(t *testing.T) {
	tests := []struct {
		cpf string
		ok  bool
	}{
		{"52998224725", true},
		{"11144477735", true},
		{"52998224724", false},
		{"00000000000", false},
		{"11111111111", false},
		{"5299822472", false},
		{"529982247255", false},
		{"5299822472a", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, ValidCPF(tt.cpf), "cpf %q", tt.cpf)
	}
}
