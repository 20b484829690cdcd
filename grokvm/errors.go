package grokvm

import (
	"errors"
	"fmt"
)

var (
	ErrNotCallable      = errors.New("not a function")
	ErrEmptyPropertyKey = errors.New("property name length was 0")
	ErrFrameLimit       = errors.New("call frame limit exceeded")
)

// RuntimeError is a script-level fault. It ends the run; the VM must be reset
// before reuse.
type RuntimeError struct {
	PC  int
	Op  OpCode
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("pc %d (%s): %v", e.PC, e.Op, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// BytecodeFault reports a malformed instruction stream. It is raised with
// panic and never recovered by the engine.
type BytecodeFault struct {
	PC     int
	Op     OpCode
	Reason string
}

func (f *BytecodeFault) Error() string {
	if f.PC < 0 {
		return "fatal: " + f.Reason
	}
	return fmt.Sprintf("fatal: pc %d (%s): %s", f.PC, f.Op, f.Reason)
}
