package grokrun

import (
	"io"
	"os"
)

// Stdout receives print output of script code.
type Stdout io.Writer

func (Module) Stdout() Stdout {
	return os.Stdout
}

// TraceWriter receives the per-instruction trace when tracing is enabled.
type TraceWriter io.Writer

func (Module) TraceWriter() TraceWriter {
	return os.Stderr
}
