package ir

// Version constants for the instruction model and the generator.
const (
	// IRVersion is the draw instruction schema version.
	IRVersion = "1"

	// GeneratorVersion is stamped into generated documents as the creator.
	GeneratorVersion = "0.3.0"
)
