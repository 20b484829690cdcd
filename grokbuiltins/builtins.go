package grokbuiltins

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/reusee/grok/grokenv"
	"github.com/reusee/grok/grokobj"
	"github.com/reusee/grok/grokvm"
)

var ErrAssertion = errors.New("assertion failed")

type Options struct {
	// Stdout receives print output; os.Stdout when nil.
	Stdout io.Writer
}

// Install defines the host functions and constants in the global scope of store.
func Install(store *grokenv.Store, vm *grokvm.VM, options *Options) {
	var stdout io.Writer = os.Stdout
	if options != nil && options.Stdout != nil {
		stdout = options.Stdout
	}

	store.DefineReadOnly("undefined", grokobj.Undefined())
	store.DefineReadOnly("NaN", grokobj.Number(math.NaN()))
	store.DefineReadOnly("Infinity", grokobj.Number(math.Inf(1)))

	def := func(name string, constructs grokobj.ConstructKind, fn grokobj.NativeFunc) {
		store.Define(name, grokobj.NewFunction(&grokobj.Function{
			Name:       name,
			Native:     fn,
			Constructs: constructs,
		}))
	}

	def("print", grokobj.ConstructObject, func(args []*grokobj.Object, this *grokobj.Object) (*grokobj.Object, error) {
		strs := make([]string, 0, len(args))
		for _, arg := range args {
			strs = append(strs, grokobj.ToString(arg))
		}
		if _, err := fmt.Fprintln(stdout, strings.Join(strs, " ")); err != nil {
			return nil, err
		}
		return grokobj.Undefined(), nil
	})

	def("assert_equal", grokobj.ConstructObject, func(args []*grokobj.Object, this *grokobj.Object) (*grokobj.Object, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("assert_equal expects 2 arguments, got %d", len(args))
		}
		if !grokobj.Equal(args[0], args[1]) {
			return nil, fmt.Errorf("%w: %s != %s", ErrAssertion,
				grokobj.ToString(args[0]), grokobj.ToString(args[1]))
		}
		return grokobj.Undefined(), nil
	})

	def("invoke", grokobj.ConstructObject, func(args []*grokobj.Object, this *grokobj.Object) (*grokobj.Object, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("invoke expects a function")
		}
		return vm.Invoke(args[0], this, args[1:])
	})

	def("Array", grokobj.ConstructArray, func(args []*grokobj.Object, this *grokobj.Object) (*grokobj.Object, error) {
		if len(args) == 1 && args[0].Kind() == grokobj.KindNumber {
			n := args[0].Number()
			if n < 0 || n != math.Trunc(n) || n >= 1<<24 {
				return nil, fmt.Errorf("invalid array length %s", grokobj.ToString(args[0]))
			}
			return grokobj.NewArray(int(n)), nil
		}
		ret := grokobj.NewArray(len(args))
		for i, arg := range args {
			ret.Array().Assign(i, grokobj.Copy(arg))
		}
		return ret, nil
	})

	def("Number", grokobj.ConstructNumber, func(args []*grokobj.Object, this *grokobj.Object) (*grokobj.Object, error) {
		if len(args) == 0 {
			return grokobj.Number(0), nil
		}
		return grokobj.Number(grokobj.ToNumber(args[0])), nil
	})

	def("Boolean", grokobj.ConstructBoolean, func(args []*grokobj.Object, this *grokobj.Object) (*grokobj.Object, error) {
		if len(args) == 0 {
			return grokobj.NumberFromBool(false), nil
		}
		return grokobj.NumberFromBool(grokobj.Truthy(args[0])), nil
	})

	def("Object", grokobj.ConstructObject, func(args []*grokobj.Object, this *grokobj.Object) (*grokobj.Object, error) {
		return grokobj.NewObject(), nil
	})
}
