package grokvm

import "fmt"

type Instruction struct {
	Op    OpCode
	Jump  int
	Datum Datum
}

// String renders the trace form: opcode padded to 10, jump offset padded to 5,
// then the datum.
func (i Instruction) String() string {
	return fmt.Sprintf("%-10s%-5d%s", i.Op, i.Jump, i.Datum)
}

// Program is an instruction sequence and the bounds a run executes within.
type Program struct {
	Code  []Instruction
	Start int
	End   int
}

func NewProgram(code []Instruction) *Program {
	return &Program{
		Code: code,
		End:  len(code),
	}
}
