package registration

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOption is returned when a selection is not one of the offered options.
var ErrUnknownOption = errors.New("unknown option")

// ErrNotVerified is returned when submission is attempted before the email is verified.
var ErrNotVerified = errors.New("email is not verified")

// ValidationError lists required fields that are empty at submit time.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}
