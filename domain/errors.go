package domain

import "errors"

// ErrEmptyTitle indicates a create or edit whose title trims to empty.
// The offending operation is refused before any state changes.
var ErrEmptyTitle = errors.New("task title cannot be empty")

// ErrUnknownStatus indicates a status outside the declared column set.
var ErrUnknownStatus = errors.New("unknown column status")

// ErrUnknownTheme indicates a theme outside the enumerated theme set.
var ErrUnknownTheme = errors.New("unknown theme")
