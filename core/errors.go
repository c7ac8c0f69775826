package core

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every *InvalidParameterError via errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports a ParameterSet field outside its domain
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func invalidf(field string, value float64, format string, args ...interface{}) error {
	return &InvalidParameterError{
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
	}
}

// InvalidField returns the offending field name if err is an InvalidParameterError
func InvalidField(err error) (string, bool) {
	var ipe *InvalidParameterError
	if errors.As(err, &ipe) {
		return ipe.Field, true
	}
	return "", false
}
