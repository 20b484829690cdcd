package grokvm

import (
	"io"
	"log/slog"

	"github.com/reusee/grok/grokobj"
)

type Options struct {
	// Trace receives one line per executed instruction when set.
	Trace         io.Writer
	Logger        *slog.Logger
	StackCapacity int
	// FrameLimit bounds call depth; zero means unlimited.
	FrameLimit int
}

type VM struct {
	Code    []Instruction
	Current int
	Start   int
	End     int
	Flags   Flags
	AC      *grokobj.Object

	Stack  []Value
	TStack []*grokobj.Object
	Frames []Frame

	scope  Scope
	trace  io.Writer
	logger *slog.Logger
	limit  int
}

const defaultStackCapacity = 256

func New(scope Scope, options *Options) *VM {
	capacity := defaultStackCapacity
	v := &VM{
		logger: slog.New(slog.DiscardHandler),
	}
	if options != nil {
		if options.StackCapacity > 0 {
			capacity = options.StackCapacity
		}
		if options.Logger != nil {
			v.logger = options.Logger
		}
		v.trace = options.Trace
		v.limit = options.FrameLimit
	}
	v.Stack = make([]Value, 0, capacity)
	v.TStack = make([]*grokobj.Object, 0, capacity)
	v.Frames = make([]Frame, 0, 64)
	v.SetScope(scope)
	return v
}

// SetScope attaches the scope store and makes its receiver the initial this.
func (v *VM) SetScope(scope Scope) {
	v.scope = scope
	if scope != nil {
		v.TStack = append(v.TStack, scope.This())
	}
}

func (v *VM) Scope() Scope {
	return v.scope
}

// Load installs p as the instruction stream and rewinds the counters.
func (v *VM) Load(p *Program) {
	v.Code = p.Code
	v.SetCounters(p.Start, p.End)
}

func (v *VM) SetCounters(start, end int) {
	v.Current = start
	v.Start = start
	v.End = end
}

func (v *VM) SetTrace(w io.Writer) {
	v.trace = w
}

// Reset clears all stacks and registers, closes the scopes of unreturned
// calls and rewinds to Start.
func (v *VM) Reset() {
	v.Current = v.Start
	v.clear()
	v.logger.Debug("vm reset", "start", v.Start, "end", v.End)
}

// ShutDown resets the VM and detaches the scope store.
func (v *VM) ShutDown() {
	v.Current = v.Start
	v.clear()
	v.scope = nil
	v.logger.Debug("vm shut down")
}

// clear also closes the scope each unreturned script frame opened. Native
// frames never outlive their call, so every remaining frame owns one scope.
func (v *VM) clear() {
	if v.scope != nil {
		for range v.Frames {
			v.scope.RemoveScope()
		}
	}
	clear(v.Stack)
	v.Stack = v.Stack[:0]
	clear(v.TStack)
	v.TStack = v.TStack[:0]
	v.Frames = v.Frames[:0]
	v.Flags = 0
	v.AC = nil
}

// GetResult pops the operand stack top, or returns undefined when it is empty.
func (v *VM) GetResult() *grokobj.Object {
	if len(v.Stack) == 0 {
		return grokobj.Undefined()
	}
	return v.pop().O
}

// This returns the current receiver: the this-stack top, or the scope store's
// receiver when the this-stack is empty.
func (v *VM) This() *grokobj.Object {
	if n := len(v.TStack); n > 0 {
		return v.TStack[n-1]
	}
	return v.scope.This()
}

func (v *VM) IsConstructorCall() bool {
	return v.Flags&ConstructorCall != 0
}

func (v *VM) EndedConstructorCall() {
	v.Flags &^= ConstructorCall
}

// SaveState pushes a call frame holding the counter, flags and both stack depths.
func (v *VM) SaveState() {
	v.Frames = append(v.Frames, Frame{
		PC:          v.Current,
		Flags:       v.Flags,
		OperandMark: len(v.Stack),
		ThisMark:    len(v.TStack),
	})
}

// RestoreState pops the last frame and truncates both stacks to its depths,
// discarding whatever the callee left behind.
func (v *VM) RestoreState() Frame {
	frame := v.popFrame()
	v.Current = frame.PC
	v.Flags = frame.Flags
	v.truncate(frame)
	return frame
}

func (v *VM) popFrame() Frame {
	n := len(v.Frames)
	if n == 0 {
		v.fault("return without a call frame")
	}
	frame := v.Frames[n-1]
	v.Frames = v.Frames[:n-1]
	return frame
}

func (v *VM) truncate(frame Frame) {
	if frame.OperandMark < len(v.Stack) {
		clear(v.Stack[frame.OperandMark:])
		v.Stack = v.Stack[:frame.OperandMark]
	}
	if frame.ThisMark < len(v.TStack) {
		clear(v.TStack[frame.ThisMark:])
		v.TStack = v.TStack[:frame.ThisMark]
	}
}

func (v *VM) SetAC(o *grokobj.Object) {
	v.AC = o
}

func (v *VM) push(val Value) {
	v.Stack = append(v.Stack, val)
}

func (v *VM) pushObject(o *grokobj.Object) {
	v.Stack = append(v.Stack, Value{O: o})
}

func (v *VM) pop() Value {
	n := len(v.Stack)
	if n == 0 {
		v.fault("operand stack underflow")
	}
	val := v.Stack[n-1]
	v.Stack[n-1] = Value{}
	v.Stack = v.Stack[:n-1]
	return val
}

func (v *VM) top() *Value {
	n := len(v.Stack)
	if n == 0 {
		v.fault("operand stack underflow")
	}
	return &v.Stack[n-1]
}

func (v *VM) pushThis(o *grokobj.Object) {
	v.TStack = append(v.TStack, o)
}

// setFlags recomputes ZeroFlag from the operand stack top.
func (v *VM) setFlags() {
	if grokobj.Truthy(v.top().O) {
		v.Flags &^= ZeroFlag
	} else {
		v.Flags |= ZeroFlag
	}
}
