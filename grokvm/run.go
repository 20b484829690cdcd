package grokvm

import (
	"errors"
	"fmt"
	"math"

	"github.com/reusee/grok/grokobj"
)

// Run executes instructions from Current until Current reaches End. Script
// calls redirect Current and never recurse into Run.
func (v *VM) Run() error {
	for v.Current != v.End {
		if err := v.step(); err != nil {
			if errors.Is(err, errLeave) {
				v.Current = v.End
				return nil
			}
			v.logger.Debug("vm fault",
				"pc", v.Current,
				"err", err,
			)
			return err
		}
	}
	return nil
}

// step executes the instruction at Current and advances past it, unless the
// instruction ended the run.
func (v *VM) step() error {
	if v.Current < 0 || v.Current >= len(v.Code) {
		panic(&BytecodeFault{
			PC:     v.Current,
			Reason: fmt.Sprintf("program counter out of range [0, %d)", len(v.Code)),
		})
	}
	inst := &v.Code[v.Current]
	if v.trace != nil {
		fmt.Fprintf(v.trace, "%s %s\n", inst, v.Flags.indicator())
	}
	if err := v.execute(inst); err != nil {
		return &RuntimeError{
			PC:  v.Current,
			Op:  inst.Op,
			Err: err,
		}
	}
	if v.Current != v.End {
		v.Current++
	}
	return nil
}

var binaryOps = map[OpCode]grokobj.BinaryFunc{
	OpAdds:  grokobj.Add,
	OpSubs:  grokobj.Sub,
	OpMuls:  grokobj.Mul,
	OpDivs:  grokobj.Div,
	OpRems:  grokobj.Rem,
	OpLts:   grokobj.Lt,
	OpGts:   grokobj.Gt,
	OpLtes:  grokobj.Le,
	OpGtes:  grokobj.Ge,
	OpEqs:   grokobj.Eq,
	OpNeqs:  grokobj.Ne,
	OpShls:  grokobj.Shl,
	OpShrs:  grokobj.Shr,
	OpBors:  grokobj.BitOr,
	OpBands: grokobj.BitAnd,
	OpOrs:   grokobj.LogicalOr,
	OpAnds:  grokobj.LogicalAnd,
	OpXors:  grokobj.BitXor,
}

func (v *VM) execute(inst *Instruction) error {
	switch inst.Op {

	case OpNoop, OpLoopz:

	case OpFetch:
		return v.fetch(inst)

	case OpStore:
		lhs := v.pop()
		rhs := v.pop()
		if lhs.O.IsWritable() {
			lhs.O.Reset(rhs.O)
		}
		v.push(lhs)
		v.setFlags()

	case OpPush:
		v.pushDatum(inst)

	case OpPushim:
		if v.AC == nil {
			v.fault("pushim with an empty accumulator")
		}
		v.pushObject(v.AC)
		v.setFlags()

	case OpPushthis:
		if n := len(v.TStack); n > 0 {
			v.pushObject(v.TStack[n-1])
			v.TStack[n-1] = nil
			v.TStack = v.TStack[:n-1]
		} else {
			v.pushObject(v.scope.This())
		}

	case OpPoprop:
		return v.poprop(inst)

	case OpReplprop:
		obj := v.pop()
		v.pushThis(obj.O)
		v.pushObject(grokobj.GetProperty(obj.O, v.name(inst)))
		v.setFlags()

	case OpIndex:
		index := v.pop()
		collection := v.pop()
		key := grokobj.ToString(index.O)
		if grokobj.IsArray(collection.O) {
			v.pushObject(collection.O.Array().At(key))
		} else {
			v.pushObject(grokobj.GetProperty(collection.O, key))
		}
		v.pushThis(collection.O)
		v.setFlags()

	case OpRes:
		v.AC = grokobj.NewArray(v.count(inst))

	case OpNews:
		v.scope.StoreValue(v.name(inst), grokobj.Undefined())

	case OpCpya:
		if v.AC == nil || !grokobj.IsArray(v.AC) {
			v.fault("cpya without an array in the accumulator")
		}
		array := v.AC.Array()
		for i := v.count(inst); i > 0; i-- {
			array.Assign(i-1, grokobj.Copy(v.pop().O))
		}

	case OpMaps:
		v.top().Key = v.name(inst)

	case OpAdds, OpSubs, OpMuls, OpDivs, OpRems,
		OpLts, OpGts, OpLtes, OpGtes, OpEqs, OpNeqs,
		OpShls, OpShrs, OpBors, OpBands, OpOrs, OpAnds, OpXors:
		rhs := v.pop()
		lhs := v.pop()
		v.pushObject(binaryOps[inst.Op](lhs.O, rhs.O))
		v.setFlags()

	case OpInc, OpDec:
		operand := v.pop().O
		num := grokobj.Reparse(operand)
		if !grokobj.IsUndefined(num) {
			if inst.Op == OpInc {
				num = grokobj.Number(num.Number() + 1)
			} else {
				num = grokobj.Number(num.Number() - 1)
			}
		}
		if operand.IsWritable() {
			operand.Reset(num)
			v.pushObject(operand)
		} else {
			v.pushObject(num)
		}
		v.setFlags()

	case OpPinc, OpPdec:
		operand := v.pop().O
		snapshot := grokobj.Reparse(operand)
		num := snapshot
		if !grokobj.IsUndefined(num) {
			if inst.Op == OpPinc {
				num = grokobj.Number(num.Number() + 1)
			} else {
				num = grokobj.Number(num.Number() - 1)
			}
		}
		if operand.IsWritable() {
			operand.Reset(num)
		}
		v.pushObject(snapshot)
		v.setFlags()

	case OpSnot, OpBnot:
		num := grokobj.Reparse(v.pop().O)
		if !grokobj.IsUndefined(num) {
			i := grokobj.ToInt32(num.Number())
			if inst.Op == OpSnot {
				num = grokobj.NumberFromBool(i == 0)
			} else {
				num = grokobj.Number(float64(^i))
			}
		}
		v.pushObject(num)
		v.setFlags()

	case OpJmp:
		v.Current += inst.Jump

	case OpJmpz:
		if v.Flags&ZeroFlag != 0 {
			v.Current += inst.Jump
		}

	case OpJmpnz:
		if v.Flags&ZeroFlag == 0 {
			v.Current += inst.Jump
		}

	case OpMarkst:
		v.Flags |= ConstructorCall

	case OpCall:
		return v.call(inst)

	case OpRet:
		v.ret()

	case OpLeave:
		v.Current = v.End

	default:
		v.fault(fmt.Sprintf("unknown opcode %v", inst.Op))
	}

	return nil
}

func (v *VM) fetch(inst *Instruction) error {
	name := v.name(inst)
	if name == "this" {
		v.AC = v.This()
		return nil
	}
	value, err := v.scope.GetValue(name)
	if err != nil {
		return err
	}
	v.AC = value
	return nil
}

func (v *VM) pushDatum(inst *Instruction) {
	d := inst.Datum
	switch d.Kind {
	case DatumNumber:
		v.pushObject(grokobj.Number(d.Num))
	case DatumString:
		v.pushObject(grokobj.String(d.Str))
	case DatumBool:
		v.pushObject(grokobj.NumberFromBool(d.Bool))
	case DatumNull:
		v.pushObject(grokobj.Null())
	case DatumObject:
		if d.Obj == nil {
			v.fault("push of a nil embedded object")
		}
		v.pushObject(d.Obj)
	default:
		v.fault(fmt.Sprintf("unknown type was asked to push: %v", d.Kind))
	}
	v.setFlags()
}

// poprop builds an object literal from the top N slots, each named by the key
// maps attached to it. Later slots win on duplicate keys.
func (v *VM) poprop(inst *Instruction) error {
	n := v.count(inst)
	if n > len(v.Stack) {
		v.fault("operand stack underflow")
	}
	slots := v.Stack[len(v.Stack)-n:]
	obj := grokobj.NewObject()
	for i := len(slots) - 1; i >= 0; i-- {
		if len(slots[i].Key) == 0 {
			return ErrEmptyPropertyKey
		}
	}
	for _, slot := range slots {
		grokobj.SetProperty(obj, slot.Key, grokobj.Copy(slot.O))
	}
	for range n {
		v.pop()
	}
	v.pushObject(obj)
	v.setFlags()
	return nil
}

func (v *VM) name(inst *Instruction) string {
	switch inst.Datum.Kind {
	case DatumName, DatumString:
		return inst.Datum.Str
	}
	v.fault(fmt.Sprintf("expecting a name operand, got %v", inst.Datum.Kind))
	return ""
}

// counts at or above maxCount are malformed; it matches the array index bound
const maxCount = 1 << 24

func (v *VM) count(inst *Instruction) int {
	n := inst.Datum.Num
	if inst.Datum.Kind != DatumNumber || !(n >= 0 && n < maxCount) || n != math.Trunc(n) {
		v.fault(fmt.Sprintf("expecting a count operand, got %v %s", inst.Datum.Kind, inst.Datum))
	}
	return int(n)
}

func (v *VM) fault(reason string) {
	f := &BytecodeFault{
		PC:     v.Current,
		Reason: reason,
	}
	if v.Current >= 0 && v.Current < len(v.Code) {
		f.Op = v.Code[v.Current].Op
	}
	panic(f)
}
