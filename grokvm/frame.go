package grokvm

// Frame is the engine state saved by a call and restored by the matching return.
type Frame struct {
	PC          int
	Flags       Flags
	OperandMark int
	ThisMark    int
}
