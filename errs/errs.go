/*
Package errs holds the error kinds shared by all packages of kaiseki.

Errors returned by kaiseki wrap one of the kinds below, so clients test for
them with errors.Is:

	if errors.Is(err, errs.ErrDeserialize) {
		// dictionary blob is corrupt or of an incompatible version
	}
*/
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration flags an invalid mode, a malformed filter configuration or
	// an unknown dictionary or filter kind.
	ErrConfiguration = errors.New("configuration error")

	// ErrDeserialize flags a corrupt or version-incompatible dictionary blob.
	ErrDeserialize = errors.New("deserialization error")

	// ErrArgs flags an invalid construction argument, e.g. a bad regex pattern.
	ErrArgs = errors.New("invalid argument")

	// ErrIO flags a failure reading dictionary data.
	ErrIO = errors.New("i/o error")
)

// Configf returns an ErrConfiguration with a formatted message.
func Configf(format string, args ...interface{}) error {
	return wrapf(ErrConfiguration, format, args...)
}

// Deserializef returns an ErrDeserialize with a formatted message.
func Deserializef(format string, args ...interface{}) error {
	return wrapf(ErrDeserialize, format, args...)
}

// Argsf returns an ErrArgs with a formatted message.
func Argsf(format string, args ...interface{}) error {
	return wrapf(ErrArgs, format, args...)
}

// IO wraps err as ErrIO, naming the resource that failed.
func IO(resource string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrIO, resource, err)
}

func wrapf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
