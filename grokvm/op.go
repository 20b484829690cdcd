package grokvm

import "fmt"

type OpCode uint8

const (
	OpNoop OpCode = iota
	OpFetch
	OpStore
	OpPush
	OpPushim
	OpPoprop
	OpReplprop
	OpIndex
	OpRes
	OpNews
	OpCpya
	OpMaps
	OpLts
	OpGts
	OpLtes
	OpGtes
	OpEqs
	OpNeqs
	OpAdds
	OpSubs
	OpMuls
	OpDivs
	OpShls
	OpShrs
	OpRems
	OpBors
	OpBands
	OpOrs
	OpAnds
	OpXors
	OpLoopz
	OpJmp
	OpCall
	OpRet
	OpJmpz
	OpLeave
	OpMarkst
	OpPushthis
	OpInc
	OpDec
	OpSnot
	OpBnot
	OpPinc
	OpPdec
	OpJmpnz

	numOpCodes
)

var opCodeNames = [numOpCodes]string{
	OpNoop:     "noop",
	OpFetch:    "fetch",
	OpStore:    "store",
	OpPush:     "push",
	OpPushim:   "pushim",
	OpPoprop:   "poprop",
	OpReplprop: "replprop",
	OpIndex:    "index",
	OpRes:      "res",
	OpNews:     "news",
	OpCpya:     "cpya",
	OpMaps:     "maps",
	OpLts:      "lts",
	OpGts:      "gts",
	OpLtes:     "ltes",
	OpGtes:     "gtes",
	OpEqs:      "eqs",
	OpNeqs:     "neqs",
	OpAdds:     "adds",
	OpSubs:     "subs",
	OpMuls:     "muls",
	OpDivs:     "divs",
	OpShls:     "shls",
	OpShrs:     "shrs",
	OpRems:     "rems",
	OpBors:     "bors",
	OpBands:    "bands",
	OpOrs:      "ors",
	OpAnds:     "ands",
	OpXors:     "xors",
	OpLoopz:    "loopz",
	OpJmp:      "jmp",
	OpCall:     "call",
	OpRet:      "ret",
	OpJmpz:     "jmpz",
	OpLeave:    "leave",
	OpMarkst:   "markst",
	OpPushthis: "pushthis",
	OpInc:      "inc",
	OpDec:      "dec",
	OpSnot:     "snot",
	OpBnot:     "bnot",
	OpPinc:     "pinc",
	OpPdec:     "pdec",
	OpJmpnz:    "jmpnz",
}

var stringToOpCode = func() map[string]OpCode {
	ret := make(map[string]OpCode, numOpCodes)
	for op, name := range opCodeNames {
		ret[name] = OpCode(op)
	}
	return ret
}()

func (o OpCode) String() string {
	if o < numOpCodes {
		return opCodeNames[o]
	}
	return fmt.Sprintf("opcode(%d)", uint8(o))
}

func (o OpCode) Valid() bool {
	return o < numOpCodes
}

func ParseOpCode(name string) (OpCode, bool) {
	op, ok := stringToOpCode[name]
	return op, ok
}

// IsJump reports whether o uses the instruction's jump offset.
func (o OpCode) IsJump() bool {
	switch o {
	case OpJmp, OpJmpz, OpJmpnz:
		return true
	}
	return false
}
