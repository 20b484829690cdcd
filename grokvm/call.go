package grokvm

import (
	"errors"
	"slices"

	"github.com/reusee/grok/grokobj"
)

// errLeave is returned by Invoke when a leave instruction ends the run while
// a re-entrant call is still active.
var errLeave = errors.New("leave")

func (v *VM) call(inst *Instruction) error {
	n := v.count(inst)
	args := make([]*grokobj.Object, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = v.pop().O
	}
	callee := v.pop().O

	construct := v.IsConstructorCall()
	v.SaveState()
	v.EndedConstructorCall()

	if v.limit > 0 && len(v.Frames) > v.limit {
		v.popFrame()
		return ErrFrameLimit
	}
	if !grokobj.IsCallable(callee) {
		v.popFrame()
		return ErrNotCallable
	}

	fn := callee.Function()
	fn.Prepare()

	if fn.IsNative() {
		return v.callNative(fn, args, construct)
	}

	v.enter(fn, args, construct)
	return nil
}

// callNative runs a host function without redirecting Current, restoring the
// whole frame (both stack marks) before pushing the result.
func (v *VM) callNative(fn *grokobj.Function, args []*grokobj.Object, construct bool) error {
	result, err := fn.CallNative(args, v.This())
	frame := v.popFrame()
	v.Flags = frame.Flags
	v.truncate(frame)
	if err != nil {
		return err
	}
	v.pushObject(result)
	if construct {
		v.pushThis(result)
		v.EndedConstructorCall()
	}
	v.setFlags()
	return nil
}

// enter binds a script function's receiver and parameters and redirects
// Current to the instruction before its entry address.
func (v *VM) enter(fn *grokobj.Function, args []*grokobj.Object, construct bool) {
	if construct {
		this := grokobj.NewObject()
		grokobj.CopyPrototype(fn, this)
		v.pushThis(this)
	}
	v.scope.CreateScope()
	for i, name := range fn.ParamNames() {
		if i < len(args) {
			v.scope.StoreValue(name, grokobj.Copy(args[i]))
		} else {
			v.scope.StoreValue(name, grokobj.Undefined())
		}
	}
	v.Current = fn.Address() - 1
}

func (v *VM) ret() {
	result := v.pop().O
	n := len(v.Frames)
	if n == 0 {
		v.fault("return without a call frame")
	}
	frame := v.Frames[n-1]

	construct := frame.Flags&ConstructorCall != 0
	var this *grokobj.Object
	if construct {
		if frame.ThisMark < len(v.TStack) {
			this = v.TStack[frame.ThisMark]
		} else {
			this = v.This()
		}
	}

	v.RestoreState()
	if construct {
		v.pushThis(this)
		v.EndedConstructorCall()
	}
	v.pushObject(result)
	v.scope.RemoveScope()
	v.setFlags()
}

// Invoke calls fn with the given receiver and arguments from host code,
// typically from inside a native function. Script functions run on the same
// stacks until their matching ret, so the caller's state is left intact.
func (v *VM) Invoke(callee *grokobj.Object, this *grokobj.Object, args []*grokobj.Object) (*grokobj.Object, error) {
	if !grokobj.IsCallable(callee) {
		return nil, ErrNotCallable
	}
	fn := callee.Function()
	fn.Prepare()
	if fn.IsNative() {
		return fn.CallNative(args, this)
	}

	if this == nil {
		this = v.This()
	}
	pc := v.Current
	depth := len(v.Frames)
	thisMark := len(v.TStack)
	v.pushThis(this)
	v.SaveState()
	if v.limit > 0 && len(v.Frames) > v.limit {
		v.popFrame()
		v.TStack = v.TStack[:thisMark]
		return nil, ErrFrameLimit
	}
	v.enter(fn, slices.Clone(args), false)
	v.Current++

	for len(v.Frames) > depth {
		if v.Current == v.End {
			return nil, errLeave
		}
		if err := v.step(); err != nil {
			return nil, err
		}
	}

	// the matching ret restored pc and step moved past it
	v.Current = pc
	result := v.pop().O
	clear(v.TStack[thisMark:])
	v.TStack = v.TStack[:thisMark]
	return result, nil
}
