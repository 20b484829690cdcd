package grokvm

type Flags uint8

const (
	// ZeroFlag is set when the last produced value is falsy.
	ZeroFlag Flags = 1 << iota
	// ConstructorCall marks the pending call as a new invocation.
	ConstructorCall
)

func (f Flags) indicator() string {
	if f&ZeroFlag != 0 {
		return "Z"
	}
	return "-"
}
