package logger

// Field names shared by every log line so they can be grepped consistently.
const (
	FieldStatement = "statement"
	FieldKey       = "key"
	FieldHash      = "hash"
	FieldLength    = "length"
	FieldGUID      = "guid"
	FieldCount     = "count"
	FieldPath      = "path"
)
