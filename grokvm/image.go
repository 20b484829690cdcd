package grokvm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/reusee/grok/grokobj"
)

// image is the serialized form of a Program. Function objects embedded in
// push instructions are stored once in Functions and referenced by index, so
// instructions that shared an object still share it after decoding.
type image struct {
	Version   int             `cbor:"1,keyasint"`
	Start     int             `cbor:"2,keyasint"`
	End       int             `cbor:"3,keyasint"`
	Code      []imageInst     `cbor:"4,keyasint"`
	Functions []imageFunction `cbor:"5,keyasint,omitempty"`
}

type imageInst struct {
	Op   OpCode    `cbor:"1,keyasint"`
	Jump int       `cbor:"2,keyasint,omitempty"`
	Kind DatumKind `cbor:"3,keyasint,omitempty"`
	Num  float64   `cbor:"4,keyasint,omitempty"`
	Str  string    `cbor:"5,keyasint,omitempty"`
	Bool bool      `cbor:"6,keyasint,omitempty"`
	// Func is a 1-based index into image.Functions
	Func int `cbor:"7,keyasint,omitempty"`
}

type imageFunction struct {
	Name       string                `cbor:"1,keyasint"`
	Params     []string              `cbor:"2,keyasint,omitempty"`
	Entry      int                   `cbor:"3,keyasint"`
	Constructs grokobj.ConstructKind `cbor:"4,keyasint,omitempty"`
}

const imageVersion = 1

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("grokvm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalProgram serializes p to CBOR. Only script functions may be embedded
// in push instructions; native functions and plain objects have no image form.
func MarshalProgram(p *Program) ([]byte, error) {
	img := image{
		Version: imageVersion,
		Start:   p.Start,
		End:     p.End,
		Code:    make([]imageInst, 0, len(p.Code)),
	}
	indexes := make(map[*grokobj.Function]int)
	for pc, inst := range p.Code {
		out := imageInst{
			Op:   inst.Op,
			Jump: inst.Jump,
			Kind: inst.Datum.Kind,
			Num:  inst.Datum.Num,
			Str:  inst.Datum.Str,
			Bool: inst.Datum.Bool,
		}
		if inst.Datum.Kind == DatumObject {
			obj := inst.Datum.Obj
			if obj == nil || obj.Kind() != grokobj.KindFunction || obj.Function().IsNative() {
				return nil, fmt.Errorf("grokvm: marshal program: pc %d: only script functions can be embedded", pc)
			}
			fn := obj.Function()
			idx, ok := indexes[fn]
			if !ok {
				img.Functions = append(img.Functions, imageFunction{
					Name:       fn.Name,
					Params:     fn.Params,
					Entry:      fn.Entry,
					Constructs: fn.Constructs,
				})
				idx = len(img.Functions)
				indexes[fn] = idx
			}
			out.Func = idx
		}
		img.Code = append(img.Code, out)
	}
	return cborEncMode.Marshal(img)
}

func UnmarshalProgram(data []byte) (*Program, error) {
	var img image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("grokvm: unmarshal program: %w", err)
	}
	if img.Version != imageVersion {
		return nil, fmt.Errorf("grokvm: unmarshal program: unsupported image version %d", img.Version)
	}
	if img.Start < 0 || img.End < img.Start || img.End > len(img.Code) {
		return nil, fmt.Errorf("grokvm: unmarshal program: bad bounds [%d, %d) for %d instructions",
			img.Start, img.End, len(img.Code))
	}

	functions := make([]*grokobj.Object, len(img.Functions))
	for i, f := range img.Functions {
		functions[i] = grokobj.NewFunction(&grokobj.Function{
			Name:       f.Name,
			Params:     f.Params,
			Entry:      f.Entry,
			Constructs: f.Constructs,
		})
	}

	p := &Program{
		Code:  make([]Instruction, 0, len(img.Code)),
		Start: img.Start,
		End:   img.End,
	}
	for pc, in := range img.Code {
		if !in.Op.Valid() {
			return nil, fmt.Errorf("grokvm: unmarshal program: pc %d: %v", pc, in.Op)
		}
		inst := Instruction{
			Op:   in.Op,
			Jump: in.Jump,
			Datum: Datum{
				Kind: in.Kind,
				Num:  in.Num,
				Str:  in.Str,
				Bool: in.Bool,
			},
		}
		if in.Kind == DatumObject {
			if in.Func < 1 || in.Func > len(functions) {
				return nil, fmt.Errorf("grokvm: unmarshal program: pc %d: bad function index %d", pc, in.Func)
			}
			inst.Datum.Obj = functions[in.Func-1]
		}
		p.Code = append(p.Code, inst)
	}
	return p, nil
}
