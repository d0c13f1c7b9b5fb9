package lookup

import (
	"errors"
	"fmt"
	"strings"
	"usercheck/pkg/serrors"
)

// InvalidInputError is returned when none of the requested site names exist in
// the catalog. Missing lists every name that did not match.
type InvalidInputError struct {
	Missing []string
}

func (e *InvalidInputError) Error() string {
	quoted := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		quoted = append(quoted, fmt.Sprintf("%q", m))
	}

	return "no valid sites from: [" + strings.Join(quoted, ", ") + "]"
}

// Is reports InvalidInputError as a bad request.
func (e *InvalidInputError) Is(target error) bool {
	return errors.Is(serrors.ErrBadRequest, target)
}
