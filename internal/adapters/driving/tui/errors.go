package tui

import "errors"

// ErrMissingAssistant is returned when the assistant service is not provided.
var ErrMissingAssistant = errors.New("tui: assistant service is required")
