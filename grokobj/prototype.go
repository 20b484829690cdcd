package grokobj

// CopyPrototype copies every own property of ctor.prototype onto target by
// value. Constructors that build arrays, booleans or numbers copy nothing.
func CopyPrototype(ctor *Function, target *Object) {
	switch ctor.Constructs {
	case ConstructArray, ConstructBoolean, ConstructNumber:
		return
	}
	proto, ok := ctor.props().Get("prototype")
	if !ok || IsUndefined(proto) {
		return
	}
	props := proto.Props()
	if props == nil {
		return
	}
	for key, value := range props.All {
		SetProperty(target, key, Copy(value))
	}
}
