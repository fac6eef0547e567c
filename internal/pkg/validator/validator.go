package validator

// Validator validates a struct using its field tags.
type Validator interface {
	// Validate returns nil when data is valid, otherwise an error describing
	// the violations.
	Validate(data any) error
}
