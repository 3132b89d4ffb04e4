// Package guard provides ConstructorGuard, a marker embedded in commands,
// queries and aggregates so that zero values created with a struct literal
// can be told apart from values built by their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether its owner went through a constructor.
//
// Example:
//
//	type RaiseExceptionCommand struct {
//	    code  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (c RaiseExceptionCommand) Validate() error {
//	    return c.guard.Validate(ErrRaiseExceptionCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
