package domain

import "errors"

var (
	// ErrBadFormat is returned when the data file does not carry the expected magic.
	ErrBadFormat = errors.New("invalid data file format")
	// ErrUnsupportedVersion indicates a data file written by a newer format revision.
	ErrUnsupportedVersion = errors.New("unsupported data file version")
	// ErrAlreadyRunning indicates another tracker instance owns the pidfile.
	ErrAlreadyRunning = errors.New("tracker already running")
	// ErrNoDevices is returned when no input device with key or relative axes exists.
	ErrNoDevices = errors.New("no suitable input devices found")
)
