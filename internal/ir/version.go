package ir

// Version constants for the value encoding and the library.
const (
	// EncodingVersion is the canonical value encoding version.
	EncodingVersion = "1"

	// Version is the swrlapi library version.
	Version = "0.1.0"
)
