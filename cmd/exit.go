package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/layoutguard/internal/application"
)

const (
	exitViolations = 1
	exitUnchecked  = 2
)

// exitError carries a process exit code for outcomes that are already
// reported on stdout.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitUnchecked
}

func checkExit(reports []application.CheckReport) error {
	summary := application.Summarize(reports)
	switch {
	case summary.Unchecked > 0:
		return &exitError{code: exitUnchecked, msg: fmt.Sprintf("%d of %d entities could not be checked", summary.Unchecked, summary.Checked)}
	case summary.Violations > 0:
		return &exitError{code: exitViolations, msg: fmt.Sprintf("%d of %d entities have layout violations", summary.Violations, summary.Checked)}
	default:
		return nil
	}
}
