package grokasm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/reusee/grok/grokobj"
	"github.com/reusee/grok/grokvm"
)

// Disassemble renders p in the form Parse accepts. Jump targets and function
// entries become labels named after their address.
func Disassemble(p *grokvm.Program) string {
	targets := make(map[int]bool)
	for pc, inst := range p.Code {
		if inst.Op.IsJump() {
			if target := pc + inst.Jump + 1; target >= 0 && target <= len(p.Code) {
				targets[target] = true
			}
		}
		if fn := embeddedFunction(inst); fn != nil {
			targets[fn.Entry] = true
		}
	}
	if p.Start != 0 {
		targets[p.Start] = true
	}
	if p.End != len(p.Code) {
		targets[p.End] = true
	}

	d := &disassembler{
		names: make(map[*grokobj.Function]string),
		used:  make(map[string]bool),
	}
	buf := new(strings.Builder)
	if p.Start != 0 {
		fmt.Fprintf(buf, ".entry %s\n", labelName(p.Start))
	}
	if p.End != len(p.Code) {
		fmt.Fprintf(buf, ".end %s\n", labelName(p.End))
	}
	for pc, inst := range p.Code {
		if targets[pc] {
			fmt.Fprintf(buf, "%s:\n", labelName(pc))
		}
		buf.WriteString("\t")
		buf.WriteString(d.instruction(pc, inst, len(p.Code)))
		buf.WriteString("\n")
	}
	if targets[len(p.Code)] {
		fmt.Fprintf(buf, "%s:\n", labelName(len(p.Code)))
	}
	return buf.String()
}

func labelName(pc int) string {
	return "L" + strconv.Itoa(pc)
}

func embeddedFunction(inst grokvm.Instruction) *grokobj.Function {
	if inst.Op != grokvm.OpPush || inst.Datum.Kind != grokvm.DatumObject {
		return nil
	}
	obj := inst.Datum.Obj
	if obj == nil || obj.Kind() != grokobj.KindFunction {
		return nil
	}
	return obj.Function()
}

type disassembler struct {
	names map[*grokobj.Function]string
	used  map[string]bool
}

func (d *disassembler) instruction(pc int, inst grokvm.Instruction, size int) string {
	op := inst.Op.String()
	switch operandOf(inst.Op) {
	case operandName:
		return op + " " + name(inst.Datum)
	case operandCount:
		return op + " " + grokobj.FormatNumber(inst.Datum.Num)
	case operandJump:
		if target := pc + inst.Jump + 1; target >= 0 && target <= size {
			return op + " @" + labelName(target)
		}
		return op + " " + strconv.Itoa(inst.Jump)
	case operandLiteral:
		return op + " " + d.literal(inst.Datum)
	}
	return op
}

func name(datum grokvm.Datum) string {
	if datum.Kind == grokvm.DatumName && isIdentifier(datum.Str) {
		return datum.Str
	}
	return strconv.Quote(datum.Str)
}

func isIdentifier(str string) bool {
	if str == "" || str == "func" || strings.HasPrefix(str, ".") {
		return false
	}
	for i, r := range str {
		if !isIdentRune(r) {
			return false
		}
		if i == 0 && (unicode.IsDigit(r) || r == '-' || r == '+') {
			return false
		}
	}
	return true
}

func (d *disassembler) literal(datum grokvm.Datum) string {
	switch datum.Kind {
	case grokvm.DatumNumber:
		switch {
		case math.IsNaN(datum.Num):
			return "NaN"
		case math.IsInf(datum.Num, 1):
			return "Infinity"
		case math.IsInf(datum.Num, -1):
			return "-Infinity"
		}
		return strconv.FormatFloat(datum.Num, 'g', -1, 64)
	case grokvm.DatumString, grokvm.DatumName:
		return strconv.Quote(datum.Str)
	case grokvm.DatumBool:
		return strconv.FormatBool(datum.Bool)
	case grokvm.DatumNull:
		return "null"
	case grokvm.DatumObject:
		obj := datum.Obj
		if obj == nil || obj.Kind() != grokobj.KindFunction {
			return "null ; " + datum.String()
		}
		return "func " + d.function(obj.Function())
	}
	return datum.String()
}

// function renders the first occurrence of fn in full and later ones by name.
// Anonymous functions are always rendered in full.
func (d *disassembler) function(fn *grokobj.Function) string {
	if name, ok := d.names[fn]; ok {
		return name
	}
	name := fn.Name
	if name != "" {
		if !isIdentifier(name) {
			name = "fn"
		}
		base := name
		for i := 2; d.used[name]; i++ {
			name = base + "_" + strconv.Itoa(i)
		}
		d.used[name] = true
		d.names[fn] = name
	}
	buf := new(strings.Builder)
	buf.WriteString(name)
	buf.WriteString("(")
	buf.WriteString(strings.Join(fn.Params, ", "))
	buf.WriteString(") @")
	buf.WriteString(labelName(fn.Entry))
	if fn.Constructs != grokobj.ConstructObject {
		buf.WriteString(" ")
		buf.WriteString(fn.Constructs.String())
	}
	return buf.String()
}
