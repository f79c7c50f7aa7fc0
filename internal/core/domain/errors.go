package domain

import "errors"

// Sentinel errors returned synchronously by the public API. Asynchronous
// outcome failures never use these; they arrive as status indications with
// a reason code instead.
var (
	// ErrInvalidParam marks a validation failure. No state was changed
	// and no callback will follow.
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrNotStarted is returned when the subsystem has not been
	// initialized, or was torn down after a driver failure.
	ErrNotStarted = errors.New("wlan subsystem not started")

	// ErrScanBusy is returned while another scan is in flight.
	ErrScanBusy = errors.New("scan already in progress")

	// ErrUnsupportedIoctl is returned for an id outside every dispatch
	// range. The value output is left untouched.
	ErrUnsupportedIoctl = errors.New("unsupported ioctl")

	// ErrSessionBusy is returned when an access-point start collides
	// with a session that is not Down.
	ErrSessionBusy = errors.New("session busy")
)
