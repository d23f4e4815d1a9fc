package logging

import (
	"fmt"
	"runtime/debug"
)

// RecoveryHandler converts panics into errors with a logged stack trace.
type RecoveryHandler struct {
	Component string
	log       *Logger
}

// NewRecoveryHandler creates a recovery handler for a component.
func NewRecoveryHandler(component string) *RecoveryHandler {
	return &RecoveryHandler{Component: component, log: New(component)}
}

// WrapError executes fn with panic recovery, returning an error on panic.
func (r *RecoveryHandler) WrapError(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			stack := string(debug.Stack())
			err = fmt.Errorf("panic in %s: %v", r.Component, rec)
			r.log.Error("panic_recovered", err, map[string]interface{}{"stack": stack})
		}
	}()
	return fn()
}
