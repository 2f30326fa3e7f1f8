package timeseries

import "errors"

// Error kinds returned by this package. Callers match them with errors.Is;
// the returned errors wrap these sentinels with context.
var (
	// ErrUnsupportedShape means the input is neither a column mapping
	// containing the timestamp field nor a sequence of records.
	ErrUnsupportedShape = errors.New("unsupported input shape")

	// ErrMissingLayout means the timestamp column holds strings but no
	// parse layout was supplied.
	ErrMissingLayout = errors.New("missing timestamp layout")

	// ErrUnsupportedTimestampType means timestamp elements are neither
	// numeric, string, nor time.Time.
	ErrUnsupportedTimestampType = errors.New("unsupported timestamp type")

	// ErrResolutionUndetermined means no interval statistics could be
	// computed, usually because the series has fewer than two timestamps.
	ErrResolutionUndetermined = errors.New("resolution could not be determined")

	// ErrDuplicateKey means a field with the requested name already exists.
	ErrDuplicateKey = errors.New("duplicate series key")

	// ErrLengthMismatch means a new value series differs from the existing
	// length by more than two elements.
	ErrLengthMismatch = errors.New("series length mismatch")

	// ErrProtectedField means the timestamp field was named in a removal.
	ErrProtectedField = errors.New("timestamp field cannot be removed")

	// ErrTypeMismatch means a series operation received something that is
	// not a usable Series.
	ErrTypeMismatch = errors.New("argument is not a time series")

	// ErrConflictingParameters means mutually exclusive parameters were
	// both supplied.
	ErrConflictingParameters = errors.New("conflicting parameters")

	// ErrUnknownKey means the requested field does not exist in the series.
	ErrUnknownKey = errors.New("unknown series key")
)
