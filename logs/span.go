package logs

// Span identifies one program execution in log records.
type Span string

type spanKey struct{}

var SpanKey spanKey
