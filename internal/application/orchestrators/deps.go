package orchestrators

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// Not-found errors surfaced to handlers as 404s.
var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrClassNotFound   = errors.New("class not found")
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrPaymentNotFound = errors.New("payment not found")
)

// IDGenerator produces entity IDs. Nil means random UUIDs.
type IDGenerator func() string

func (g IDGenerator) next() string {
	if g == nil {
		return uuid.New().String()
	}
	return g()
}

// isNotFound reports whether a store error means the row does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// lookupErr maps a store lookup failure to the domain not-found error, passing anything else through.
func lookupErr(err, notFound error) error {
	if isNotFound(err) {
		return notFound
	}
	return err
}
