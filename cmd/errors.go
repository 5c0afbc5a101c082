package cmd

import "fmt"

// ExitUsage is returned for usage and input errors. It shares its value with
// the High risk exit code to stay compatible with existing callers.
const ExitUsage = 2

// UsageError marks failures caused by how the command was invoked.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	if e.Err == nil {
		return "invalid usage"
	}
	return fmt.Sprintf("invalid usage: %v", e.Err)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}
