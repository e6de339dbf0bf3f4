package scheduling

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Party size bounds. Individuals always book for exactly one person; groups
// book for 10 to 50.
const (
	MinPartySize      = 1
	MaxPartySize      = 50
	MinGroupPartySize = 10
)

// Bookable hours: top-of-the-hour slots from 09:00 to 17:00 inclusive.
const (
	FirstSlotHour = 9
	LastSlotHour  = 17
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	timePattern  = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	nonDigits    = regexp.MustCompile(`\D+`)
)

// Submission is the raw booking request as received from the outside world.
// Nothing here is trusted; Validate normalizes and checks every field.
type Submission struct {
	Name             string
	Email            string
	CPF              string
	RG               string
	Phone            string
	Nationality      string
	GroupNationality string
	Disability       bool
	Date             string
	Time             string
	IsGroup          bool
	PartySize        int
	Note             string
}

// ValidatedSubmission is the normalized, fully validated form of a
// Submission: trimmed lower-cased email, digits-only CPF and phone,
// zero-padded HH:MM time. Downstream components never see partially valid
// data.
type ValidatedSubmission struct {
	Name             string
	Email            string
	CPF              string
	RG               string
	Phone            string
	Nationality      string
	GroupNationality string
	Disability       bool
	Date             string
	Time             string
	IsGroup          bool
	PartySize        int
	Note             string
}

// FieldErrors maps an offending field to its human-readable messages, in the
// order the checks ran. An empty map means the submission was accepted.
type FieldErrors map[string][]string

func (e FieldErrors) add(field, message string) {
	e[field] = append(e[field], message)
}

// Validator orchestrates the calendar policy, capacity ledger and proximity
// guard against a submission. All checks run and errors accumulate; only the
// date/time/party-size precondition short-circuits the business rules.
type Validator struct {
	calendar  *CalendarPolicy
	ledger    *CapacityLedger
	proximity *ProximityGuard
	clock     Clock
}

func NewValidator(store Store, clock Clock) *Validator {
	return &Validator{
		calendar:  NewCalendarPolicy(store),
		ledger:    NewCapacityLedger(store),
		proximity: NewProximityGuard(store),
		clock:     clock,
	}
}

// Validate checks sub against every booking rule. On acceptance it returns
// the normalized submission and an empty FieldErrors map. The error return
// is reserved for store failures.
func (v *Validator) Validate(sub Submission) (*ValidatedSubmission, FieldErrors, error) {
	errs := FieldErrors{}

	vs := &ValidatedSubmission{
		Name:             strings.TrimSpace(sub.Name),
		Email:            strings.ToLower(strings.TrimSpace(sub.Email)),
		CPF:              nonDigits.ReplaceAllString(sub.CPF, ""),
		RG:               strings.TrimSpace(sub.RG),
		Phone:            nonDigits.ReplaceAllString(sub.Phone, ""),
		Nationality:      strings.TrimSpace(sub.Nationality),
		GroupNationality: strings.TrimSpace(sub.GroupNationality),
		Disability:       sub.Disability,
		Date:             strings.TrimSpace(sub.Date),
		Time:             strings.TrimSpace(sub.Time),
		IsGroup:          sub.IsGroup,
		PartySize:        sub.PartySize,
		Note:             strings.TrimSpace(sub.Note),
	}

	v.checkRequester(vs, errs)
	date, dateOK := v.checkDate(vs, errs)
	slotOK := v.checkTime(vs, errs)
	sizeOK := v.checkPartySize(vs, errs)

	// Business rules need a parseable slot to reason about; structural
	// failures on date, time or party size make them meaningless.
	if !dateOK || !slotOK || !sizeOK {
		return nil, errs, nil
	}

	v.checkLeadTime(date, errs)
	if err := v.checkCalendar(date, errs); err != nil {
		return nil, nil, err
	}
	if err := v.checkCapacity(vs, errs); err != nil {
		return nil, nil, err
	}
	if err := v.checkProximity(vs, errs); err != nil {
		return nil, nil, err
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return vs, errs, nil
}

func (v *Validator) checkRequester(vs *ValidatedSubmission, errs FieldErrors) {
	if vs.Name == "" {
		errs.add("name", "Name is required.")
	}

	if vs.Email == "" {
		errs.add("email", "Email is required.")
	} else if !emailPattern.MatchString(vs.Email) {
		errs.add("email", "Email is not a valid address.")
	}

	if vs.CPF == "" {
		errs.add("cpf", "CPF is required.")
	} else if len(vs.CPF) != 11 {
		errs.add("cpf", "CPF must have exactly 11 digits.")
	} else if !ValidCPF(vs.CPF) {
		errs.add("cpf", "CPF is not valid.")
	}

	if vs.RG == "" {
		errs.add("rg", "RG is required.")
	} else if len(vs.RG) > 20 {
		errs.add("rg", "RG must have at most 20 characters.")
	}

	if vs.Phone == "" {
		errs.add("phone", "Phone is required.")
	} else if len(vs.Phone) < 10 || len(vs.Phone) > 11 {
		errs.add("phone", "Phone must have 10 or 11 digits.")
	}

	if vs.Nationality == "" {
		errs.add("nationality", "Nationality is required.")
	} else if !validNationality(vs.Nationality) {
		errs.add("nationality", "Nationality must be brasileiro or estrangeiro.")
	}
	if vs.GroupNationality != "" && !validNationality(vs.GroupNationality) {
		errs.add("groupNationality", "Group nationality must be brasileiro or estrangeiro.")
	}
}

func (v *Validator) checkDate(vs *ValidatedSubmission, errs FieldErrors) (time.Time, bool) {
	if vs.Date == "" {
		errs.add("date", "Date is required.")
		return time.Time{}, false
	}
	date, err := time.Parse(DateLayout, vs.Date)
	if err != nil {
		errs.add("date", "Date must be in YYYY-MM-DD format.")
		return time.Time{}, false
	}
	return date, true
}

func (v *Validator) checkTime(vs *ValidatedSubmission, errs FieldErrors) bool {
	if vs.Time == "" {
		errs.add("time", "Time is required.")
		return false
	}
	m := timePattern.FindStringSubmatch(vs.Time)
	if m == nil {
		errs.add("time", "Time must be in HH:MM format.")
		return false
	}

	var hour, minute int
	fmt.Sscanf(vs.Time, "%d:%d", &hour, &minute)

	if minute != 0 {
		errs.add("time", "Only top-of-the-hour slots can be booked (e.g. 09:00, 10:00).")
		return false
	}
	if hour < FirstSlotHour || hour > LastSlotHour {
		errs.add("time", "Available slots are between 09:00 and 17:00, in 1 hour intervals.")
		return false
	}

	vs.Time = fmt.Sprintf("%02d:00", hour)
	return true
}

func (v *Validator) checkPartySize(vs *ValidatedSubmission, errs FieldErrors) bool {
	ok := true
	if vs.PartySize < MinPartySize {
		errs.add("partySize", "Party size must be at least 1.")
		ok = false
	} else if vs.PartySize > MaxPartySize {
		errs.add("partySize", "Party size is limited to 50 people per booking.")
		ok = false
	}

	if vs.IsGroup {
		if ok && vs.PartySize < MinGroupPartySize {
			errs.add("partySize", "Group bookings require at least 10 people.")
			ok = false
		}
	} else if ok && vs.PartySize != 1 {
		errs.add("partySize", "Only group bookings may include more than one person.")
		ok = false
	}
	return ok
}

func (v *Validator) checkLeadTime(date time.Time, errs FieldErrors) {
	now := v.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	booked := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case booked.Before(today):
		errs.add("date", "Appointments cannot be booked for past dates.")
	case booked.Equal(today):
		errs.add("date", "Appointments must be booked at least one day in advance.")
	}
}

func (v *Validator) checkCalendar(date time.Time, errs FieldErrors) error {
	ok, reason, err := v.calendar.IsBookable(date)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	switch reason {
	case ReasonMonday:
		errs.add("date", "Bookings are not accepted on Mondays.")
	case ReasonClosedDay:
		errs.add("date", "This date is closed for visits.")
	}
	return nil
}

func (v *Validator) checkCapacity(vs *ValidatedSubmission, errs FieldErrors) error {
	occupancy, err := v.ledger.OccupancyOf(vs.Date, vs.Time)
	if err != nil {
		return err
	}
	if occupancy+vs.PartySize > SlotCapacity {
		remaining := SlotCapacity - occupancy
		if remaining < 0 {
			remaining = 0
		}
		errs.add("partySize", fmt.Sprintf(
			"Capacity exceeded: %d people already booked for %s. Only %d spots remaining.",
			occupancy, vs.Time, remaining))
	}
	return nil
}

func (v *Validator) checkProximity(vs *ValidatedSubmission, errs FieldErrors) error {
	nearby, err := v.proximity.HasNearbyAppointment(vs.Date, vs.Time, IdentityOf(vs.Email, vs.CPF))
	if err != nil {
		return err
	}
	if nearby {
		errs.add("time", "You already have an appointment too close to this time. The minimum interval between bookings is 1 hour.")
	}
	return nil
}

func validNationality(value string) bool {
	return value == "brasileiro" || value == "estrangeiro"
}

// ValidCPF checks the two verification digits of an 11-digit Brazilian CPF.
// Sequences of a single repeated digit are rejected.
func ValidCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	repeated := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return false
	}

	digits := make([]int, 11)
	for i, r := range cpf {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
	}

	return cpfDigit(digits, 9) == digits[9] && cpfDigit(digits, 10) == digits[10]
}

func cpfDigit(digits []int, position int) int {
	sum := 0
	for i := 0; i < position; i++ {
		sum += digits[i] * (position + 1 - i)
	}
	d := 11 - sum%11
	if d >= 10 {
		return 0
	}
	return d
}
