package adapter

import "errors"

var (
	// ErrStaleChangeKey reports that the change key attached to a write was
	// missing or out of date. Recoverable: refresh the key and retry once.
	ErrStaleChangeKey = errors.New("stale or missing change key")

	// ErrItemNotFound reports that the referenced id does not exist on the
	// server.
	ErrItemNotFound = errors.New("item not found on server")

	// ErrIrresolvableConflict reports a concurrent-update conflict that a
	// change-key refresh cannot reconcile.
	ErrIrresolvableConflict = errors.New("irresolvable update conflict")

	// ErrTransient is a temporary internal server error; the identical
	// request is safe to retry and the transport does so up to its bound.
	ErrTransient = errors.New("transient internal server error")

	// ErrExchangeFault is any other non-success ResponseCode; the wrapped
	// message carries the raw code text for diagnostics.
	ErrExchangeFault = errors.New("exchange fault")

	// ErrMissingResponseCode reports a response with no ResponseCode element
	// at all, which is malformed whatever else it contains.
	ErrMissingResponseCode = errors.New("exchange server did not return a status response")
)
