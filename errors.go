package gitable

import (
	"errors"
	"fmt"

	"github.com/hairyhenderson/go-gitable/internal/uri"
)

var (
	// ErrInvalidLocator is matched (with errors.Is) by every
	// *InvalidLocatorError.
	ErrInvalidLocator = errors.New("invalid git locator")

	// ErrConversion is matched (with errors.Is) by every *ConversionError.
	ErrConversion = errors.New("can't convert to a git locator")
)

// InvalidLocatorError is returned when a string is not a valid locator, or
// when a mutation leaves a Locator in an invalid state.
type InvalidLocatorError struct {
	// Reason describes the rule that was broken
	Reason string
	// Locator is the rendering of the offending locator
	Locator string
}

func (e *InvalidLocatorError) Error() string {
	return fmt.Sprintf("%s: '%s'", e.Reason, e.Locator)
}

func (e *InvalidLocatorError) Is(target error) bool {
	return target == ErrInvalidLocator
}

// ConversionError is returned by Parse when given a value that has no textual
// form.
type ConversionError struct {
	Value any
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("can't convert %T into a git locator: %v", e.Value, e.Err)
	}

	return fmt.Sprintf("can't convert %T into a git locator", e.Value)
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// invalidLocator converts errors from the uri package, and passes any other
// error through.
func invalidLocator(err error) error {
	var uerr *uri.Error
	if errors.As(err, &uerr) {
		return &InvalidLocatorError{Reason: uerr.Reason, Locator: uerr.URI}
	}

	return err
}
