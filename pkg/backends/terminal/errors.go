package terminal

import "errors"

// ErrAborted is returned when the user interrupts the session
// (Ctrl+C). Callers treat it as a cancel, not a failure.
var ErrAborted = errors.New("terminal: session aborted")
