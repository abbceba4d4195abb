package shape

// UnknownPolicy controls how object keys absent from the field map are handled.
type UnknownPolicy int

const (
	UnknownPassthrough UnknownPolicy = iota // Preserve unknown keys on the returned value.
	UnknownStrict                           // Reject unknown keys with an error.
	UnknownStrip                            // Drop unknown keys from the result.
)

// ParseOpt bundles parsing options for ParseFrom.
type ParseOpt struct {
	FailFast bool  // Stop at the first issue instead of collecting.
	MaxBytes int64 // Input size cap for reader-backed sources; 0 disables.
}
