package simulation

import (
	"errors"
	"fmt"
)

// InvalidPathError indicates a single run produced a non-finite balance. The
// run is excluded from aggregation and counted; it is never retried or
// clamped, since the process is deterministic given its seed.
type InvalidPathError struct {
	Run   int
	Month int
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("run %d: non-finite balance at month %d", e.Run, e.Month)
}

// ErrIRRUndefined is returned when a run's cash-flow sign pattern admits no
// real IRR in the search range. Such runs are excluded from the IRR
// distribution only; they remain in the value distribution.
var ErrIRRUndefined = errors.New("irr: no root in search range")
