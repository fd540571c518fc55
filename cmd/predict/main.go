// Command predict runs one-off assessments against the inference API and
// checks that the API still answers in a shape the dashboard understands.
//
// Usage:
//
//	predict assess crisis --file mumbai.yaml --set month=7
//	predict check --api http://localhost:8000
//	predict fallback priority --output json
package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes.
const (
	ExitSuccess = 0
	ExitFailed  = 1 // check failed, or --strict assessment degraded
	ExitError   = 2 // bad input or runtime error
)

// FailureError means the command ran but its outcome was a failure.
type FailureError struct {
	Message string
}

func (e *FailureError) Error() string {
	return e.Message
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var failure *FailureError
		if errors.As(err, &failure) {
			os.Exit(ExitFailed)
		}
		os.Exit(ExitError)
	}
}
