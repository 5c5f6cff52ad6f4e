package errhandler

import (
	"errors"
	"unicode"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/hance08/canopy/internal/service"
)

const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitRejected = 2
)

type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Reported marks err as already shown to the user so HandleError only maps
// it to an exit status.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}

// HandleError prints err and returns the process exit status for it.
// Business rejections exit with ExitRejected so scripts can tell them apart
// from system failures.
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, huh.ErrUserAborted) {
		pterm.Warning.Println("Operation Cancelled")
		return ExitOK
	}

	var reported reportedError
	if !errors.As(err, &reported) {
		code := service.CodeOf(err)
		msg := capitalize(err.Error())
		if code != service.CodeInternal {
			msg += pterm.Gray(" [" + string(code) + "]")
		}
		pterm.Error.Println(msg)
	}

	if service.IsRejection(err) {
		return ExitRejected
	}
	return ExitFailure
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
