package grokobj

import "fmt"

type NativeFunc func(args []*Object, this *Object) (*Object, error)

// ConstructKind tells what a function builds when invoked with new.
type ConstructKind uint8

const (
	ConstructObject ConstructKind = iota
	ConstructArray
	ConstructBoolean
	ConstructNumber
)

var constructKindNames = [...]string{
	ConstructObject:  "object",
	ConstructArray:   "array",
	ConstructBoolean: "boolean",
	ConstructNumber:  "number",
}

func (c ConstructKind) String() string {
	if int(c) < len(constructKindNames) {
		return constructKindNames[c]
	}
	return fmt.Sprintf("construct(%d)", uint8(c))
}

func ParseConstructKind(str string) (ConstructKind, bool) {
	for i, name := range constructKindNames {
		if name == str {
			return ConstructKind(i), true
		}
	}
	return 0, false
}

type Function struct {
	Name       string
	Params     []string
	Entry      int
	Native     NativeFunc
	Constructs ConstructKind

	properties *Properties
}

func (f *Function) IsNative() bool {
	return f.Native != nil
}

func (f *Function) CallNative(args []*Object, this *Object) (*Object, error) {
	ret, err := f.Native(args, this)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		ret = Undefined()
	}
	return ret, nil
}

// Prepare materializes the prototype object on first use.
func (f *Function) Prepare() {
	props := f.props()
	if _, ok := props.Get("prototype"); !ok {
		props.Set("prototype", NewObject())
	}
}

func (f *Function) ParamNames() []string {
	return f.Params
}

func (f *Function) Address() int {
	return f.Entry
}

func (f *Function) props() *Properties {
	if f.properties == nil {
		f.properties = NewProperties()
	}
	return f.properties
}
