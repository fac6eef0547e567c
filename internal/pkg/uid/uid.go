package uid

// StringID generates string-based identifiers (UUID, object IDs).
type StringID interface {
	Generate() string
}

// NumberID generates int64-based identifiers (snowflake).
type NumberID interface {
	Generate() int64
}
