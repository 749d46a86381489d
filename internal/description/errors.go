package description

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every InputError
var ErrInvalidInput = errors.New("invalid description input")

// InputError reports malformed data handed over by a data source
type InputError struct {
	Field  string
	Reason string
}

// Error returns the error message
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) hold for any InputError
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Validate checks the input for data a data source should never produce
func (in *Input) Validate() error {
	if in == nil {
		return &InputError{Field: "input", Reason: "is nil"}
	}
	if in.PR.Approvals < 0 {
		return &InputError{Field: "pr.approvals", Reason: fmt.Sprintf("must not be negative, got %d", in.PR.Approvals)}
	}
	for i, file := range in.Files {
		if file.Path == "" {
			return &InputError{Field: fmt.Sprintf("files[%d].path", i), Reason: "is empty"}
		}
	}
	return nil
}
