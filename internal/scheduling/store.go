package scheduling

import "scheduling-app-server/internal/models"

// Normalized wire formats for the scheduling boundary.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// IdentityKind tags how a requester is identified for proximity matching.
type IdentityKind string

const (
	IdentityEmail IdentityKind = "email"
	IdentityCPF   IdentityKind = "cpf"
)

// Identity is the resolved requester identity. Email takes precedence over
// CPF when both are present on a submission.
type Identity struct {
	Kind  IdentityKind
	Value string
}

// IdentityOf resolves the identity for a normalized submission.
func IdentityOf(email, cpf string) Identity {
	if email != "" {
		return Identity{Kind: IdentityEmail, Value: email}
	}
	return Identity{Kind: IdentityCPF, Value: cpf}
}

// Store is the persistence boundary of the scheduling core. "Active" means
// not soft-deleted (cancelled appointments are excluded). Implementations
// must make Transact atomic; queries executed through the Store passed to
// the callback run inside that transaction.
type Store interface {
	FindActiveByDateTime(date, slot string) ([]models.Appointment, error)
	FindActiveByIdentityWindow(date, from, to string, id Identity) ([]models.Appointment, error)
	FindActiveByUUID(uuid string) (*models.Appointment, error)
	FindClosedDay(date string) (*models.ClosedDay, error)
	Insert(a *models.Appointment) error
	Update(a *models.Appointment) error
	SoftDelete(a *models.Appointment) error
	Transact(fn func(tx Store) error) error
}

// Notifier dispatches booking notifications. Delivery is asynchronous and
// fire-and-forget: failures are logged by the implementation and never
// surface as booking errors.
type Notifier interface {
	SendAppointmentConfirmation(a *models.Appointment)
	SendCancellationNotice(a *models.Appointment)
}
