package cli

import "errors"

// Error variables for command line handling.
var (
	ErrFlagRequiresArg = errors.New("flag requires an argument")
	ErrUnknownFlag     = errors.New("unknown flag")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrGameNotFound    = errors.New("game not found")
	ErrStatusRequired  = errors.New("status is required")
	ErrTooManyArgs     = errors.New("too many arguments")
	ErrNestedShell     = errors.New("already in a shell")
	ErrHoursNotNumber  = errors.New("estimated hours must be a whole number")
)
