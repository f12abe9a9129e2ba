package failure

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	InvalidArgumentErrorName = "InvalidArgument"
	InvalidStateErrorName    = "InvalidState"
)

type InvalidArgumentError interface {
	Failure
	WithStackTrace
	Argument() string
}

type invalidArgumentError struct {
	NamedWithStackTrace
	argument string
	message  string
}

func (e invalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.argument, e.message)
}

func (e invalidArgumentError) Argument() string {
	return e.argument
}

// NewInvalidArgumentError reports a caller supplied value outside the domain of
// an operation.
func NewInvalidArgumentError(argument string, format string, args ...any) InvalidArgumentError {
	return invalidArgumentError{
		NamedWithStackTrace: NamedWithCurrentStackTrace(InvalidArgumentErrorName),
		argument:            argument,
		message:             fmt.Sprintf(format, args...),
	}
}

type InvalidStateError interface {
	Failure
	WithStackTrace
}

type invalidStateError struct {
	NamedWithStackTrace
	message string
}

func (e invalidStateError) Error() string {
	return fmt.Sprintf("invalid state: %s", e.message)
}

// NewInvalidStateError reports an operation invoked on a value that does not
// satisfy its precondition.
func NewInvalidStateError(format string, args ...any) InvalidStateError {
	return invalidStateError{
		NamedWithStackTrace: NamedWithCurrentStackTrace(InvalidStateErrorName),
		message:             fmt.Sprintf(format, args...),
	}
}

// IsNamed reports whether err, or any error it wraps, is a failure with the
// given name.
func IsNamed(err error, name string) bool {
	var named Failure
	if !errors.As(err, &named) {
		return false
	}
	return named.Name() == name
}
