package handlers

const (
	// Failure kinds added by the HTTP layer on top of the engine's kinds
	errorInvalidRequest = "InvalidRequest"

	// Query defaults for the diatonic table endpoint
	defaultKey   = "C"
	defaultScale = "major"
)
