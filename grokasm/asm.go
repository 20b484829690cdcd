package grokasm

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/reusee/grok/grokobj"
	"github.com/reusee/grok/grokvm"
)

type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

type operandKind uint8

const (
	operandNone operandKind = iota
	operandName
	operandCount
	operandJump
	operandLiteral
)

func operandOf(op grokvm.OpCode) operandKind {
	switch op {
	case grokvm.OpFetch, grokvm.OpNews, grokvm.OpReplprop, grokvm.OpMaps:
		return operandName
	case grokvm.OpPoprop, grokvm.OpRes, grokvm.OpCpya, grokvm.OpCall:
		return operandCount
	case grokvm.OpJmp, grokvm.OpJmpz, grokvm.OpJmpnz:
		return operandJump
	case grokvm.OpPush:
		return operandLiteral
	}
	return operandNone
}

type labelRef struct {
	label string
	pos   Pos
}

type assembler struct {
	tokens *Tokenizer
	code   []grokvm.Instruction
	labels map[string]int

	jumps     map[int]labelRef
	functions map[string]*grokobj.Object
	entries   map[*grokobj.Function]labelRef
	start     *labelRef
	end       *labelRef
}

// Parse assembles a program. Each line holds an optional `label:`, then an
// instruction or a directive (`.entry label`, `.end label`). Comments start
// with # or ;.
func Parse(r io.Reader) (*grokvm.Program, error) {
	a := &assembler{
		tokens:    NewTokenizer(r),
		labels:    make(map[string]int),
		jumps:     make(map[int]labelRef),
		functions: make(map[string]*grokobj.Object),
		entries:   make(map[*grokobj.Function]labelRef),
	}
	for {
		done, err := a.line()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	return a.link()
}

func ParseString(src string) (*grokvm.Program, error) {
	return Parse(strings.NewReader(src))
}

// ParseInstruction assembles a single instruction without labels.
func ParseInstruction(line string) (grokvm.Instruction, error) {
	p, err := ParseString(line)
	if err != nil {
		return grokvm.Instruction{}, err
	}
	if len(p.Code) != 1 {
		return grokvm.Instruction{}, fmt.Errorf("expecting one instruction, got %d", len(p.Code))
	}
	return p.Code[0], nil
}

func (a *assembler) next() (*Token, error) {
	tok, err := a.tokens.Current()
	if err != nil {
		return nil, err
	}
	a.tokens.Consume()
	if tok.Kind == TokenInvalid {
		return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("invalid token %q", tok.Text)}
	}
	return tok, nil
}

func (a *assembler) peek() (*Token, error) {
	return a.tokens.Current()
}

func (a *assembler) expect(kind TokenKind, text string) (*Token, error) {
	tok, err := a.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != kind || (text != "" && tok.Text != text) {
		want := kind.String()
		if text != "" {
			want = strconv.Quote(text)
		}
		return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("expecting %s, got %s", want, tok)}
	}
	return tok, nil
}

func (a *assembler) endOfLine() error {
	tok, err := a.next()
	if err != nil {
		return err
	}
	if tok.Kind != TokenNewline && tok.Kind != TokenEOF {
		return &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected %s", tok)}
	}
	return nil
}

func (a *assembler) line() (done bool, err error) {
	tok, err := a.next()
	if err != nil {
		return false, err
	}

	switch tok.Kind {
	case TokenEOF:
		return true, nil
	case TokenNewline:
		return false, nil
	case TokenIdentifier:
	default:
		return false, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected %s", tok)}
	}

	// label
	if next, err := a.peek(); err != nil {
		return false, err
	} else if next.is(TokenSymbol, ":") {
		a.tokens.Consume()
		if _, ok := a.labels[tok.Text]; ok {
			return false, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("duplicated label %s", tok.Text)}
		}
		a.labels[tok.Text] = len(a.code)
		next, err := a.next()
		if err != nil {
			return false, err
		}
		switch next.Kind {
		case TokenEOF:
			return true, nil
		case TokenNewline:
			return false, nil
		case TokenIdentifier:
			tok = next
		default:
			return false, &SyntaxError{Pos: next.Pos, Msg: fmt.Sprintf("unexpected %s", next)}
		}
	}

	if strings.HasPrefix(tok.Text, ".") {
		return false, a.directive(tok)
	}
	return false, a.instruction(tok)
}

func (a *assembler) directive(tok *Token) error {
	label, err := a.expect(TokenIdentifier, "")
	if err != nil {
		return err
	}
	ref := &labelRef{label: label.Text, pos: label.Pos}
	switch tok.Text {
	case ".entry":
		a.start = ref
	case ".end":
		a.end = ref
	default:
		return &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unknown directive %s", tok.Text)}
	}
	return a.endOfLine()
}

func (a *assembler) instruction(tok *Token) error {
	op, ok := grokvm.ParseOpCode(tok.Text)
	if !ok {
		return &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unknown opcode %s", tok.Text)}
	}
	inst := grokvm.Instruction{
		Op:    op,
		Datum: grokvm.NullDatum(),
	}

	switch operandOf(op) {

	case operandName:
		arg, err := a.next()
		if err != nil {
			return err
		}
		switch arg.Kind {
		case TokenIdentifier:
			inst.Datum = grokvm.NameDatum(arg.Text)
		case TokenString:
			inst.Datum = grokvm.StringDatum(arg.Text)
		default:
			return &SyntaxError{Pos: arg.Pos, Msg: fmt.Sprintf("expecting a name, got %s", arg)}
		}

	case operandCount:
		arg, err := a.expect(TokenNumber, "")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(arg.Text)
		if err != nil || n < 0 {
			return &SyntaxError{Pos: arg.Pos, Msg: fmt.Sprintf("bad count %s", arg.Text)}
		}
		inst.Datum = grokvm.NumberDatum(float64(n))

	case operandJump:
		arg, err := a.next()
		if err != nil {
			return err
		}
		switch {
		case arg.is(TokenSymbol, "@"):
			label, err := a.expect(TokenIdentifier, "")
			if err != nil {
				return err
			}
			a.jumps[len(a.code)] = labelRef{label: label.Text, pos: label.Pos}
		case arg.Kind == TokenNumber:
			offset, err := strconv.Atoi(arg.Text)
			if err != nil {
				return &SyntaxError{Pos: arg.Pos, Msg: fmt.Sprintf("bad jump offset %s", arg.Text)}
			}
			inst.Jump = offset
		default:
			return &SyntaxError{Pos: arg.Pos, Msg: fmt.Sprintf("expecting a jump target, got %s", arg)}
		}

	case operandLiteral:
		datum, err := a.literal()
		if err != nil {
			return err
		}
		inst.Datum = datum
	}

	a.code = append(a.code, inst)
	return a.endOfLine()
}

func (a *assembler) literal() (grokvm.Datum, error) {
	arg, err := a.next()
	if err != nil {
		return grokvm.Datum{}, err
	}
	switch arg.Kind {
	case TokenNumber:
		f, err := strconv.ParseFloat(arg.Text, 64)
		if err != nil {
			return grokvm.Datum{}, &SyntaxError{Pos: arg.Pos, Msg: fmt.Sprintf("bad number %s", arg.Text)}
		}
		return grokvm.NumberDatum(f), nil
	case TokenString:
		return grokvm.StringDatum(arg.Text), nil
	case TokenIdentifier:
		switch arg.Text {
		case "true":
			return grokvm.BoolDatum(true), nil
		case "false":
			return grokvm.BoolDatum(false), nil
		case "null":
			return grokvm.NullDatum(), nil
		case "NaN":
			return grokvm.NumberDatum(math.NaN()), nil
		case "Infinity", "+Infinity":
			return grokvm.NumberDatum(math.Inf(1)), nil
		case "-Infinity":
			return grokvm.NumberDatum(math.Inf(-1)), nil
		case "func":
			obj, err := a.function()
			if err != nil {
				return grokvm.Datum{}, err
			}
			return grokvm.ObjectDatum(obj), nil
		}
	}
	return grokvm.Datum{}, &SyntaxError{Pos: arg.Pos, Msg: fmt.Sprintf("expecting a literal, got %s", arg)}
}

// function parses `func name(a, b) @label [array|boolean|number]`. A later
// `func name` without a parameter list refers to the same function object.
func (a *assembler) function() (*grokobj.Object, error) {
	fn := new(grokobj.Function)
	tok, err := a.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenIdentifier {
		a.tokens.Consume()
		fn.Name = tok.Text
		next, err := a.peek()
		if err != nil {
			return nil, err
		}
		if !next.is(TokenSymbol, "(") {
			obj, ok := a.functions[fn.Name]
			if !ok {
				return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("undefined function %s", fn.Name)}
			}
			return obj, nil
		}
		if _, ok := a.functions[fn.Name]; ok {
			return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("duplicated function %s", fn.Name)}
		}
	}

	if _, err := a.expect(TokenSymbol, "("); err != nil {
		return nil, err
	}
	fn.Params = []string{}
	for {
		tok, err := a.next()
		if err != nil {
			return nil, err
		}
		if tok.is(TokenSymbol, ")") {
			break
		}
		if len(fn.Params) > 0 {
			if !tok.is(TokenSymbol, ",") {
				return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("expecting \",\", got %s", tok)}
			}
			if tok, err = a.next(); err != nil {
				return nil, err
			}
		}
		if tok.Kind != TokenIdentifier {
			return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("expecting a parameter name, got %s", tok)}
		}
		fn.Params = append(fn.Params, tok.Text)
	}

	if _, err := a.expect(TokenSymbol, "@"); err != nil {
		return nil, err
	}
	label, err := a.expect(TokenIdentifier, "")
	if err != nil {
		return nil, err
	}

	tok, err = a.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenIdentifier {
		a.tokens.Consume()
		kind, ok := grokobj.ParseConstructKind(tok.Text)
		if !ok {
			return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unknown construct kind %s", tok.Text)}
		}
		fn.Constructs = kind
	}

	obj := grokobj.NewFunction(fn)
	a.entries[fn] = labelRef{label: label.Text, pos: label.Pos}
	if fn.Name != "" {
		a.functions[fn.Name] = obj
	}
	return obj, nil
}

func (a *assembler) resolve(ref labelRef) (int, error) {
	pc, ok := a.labels[ref.label]
	if !ok {
		return 0, &SyntaxError{Pos: ref.pos, Msg: fmt.Sprintf("undefined label %s", ref.label)}
	}
	return pc, nil
}

func (a *assembler) link() (*grokvm.Program, error) {
	for pc, ref := range a.jumps {
		target, err := a.resolve(ref)
		if err != nil {
			return nil, err
		}
		a.code[pc].Jump = target - pc - 1
	}
	for fn, ref := range a.entries {
		entry, err := a.resolve(ref)
		if err != nil {
			return nil, err
		}
		fn.Entry = entry
	}

	p := grokvm.NewProgram(a.code)
	if a.start != nil {
		start, err := a.resolve(*a.start)
		if err != nil {
			return nil, err
		}
		p.Start = start
	}
	if a.end != nil {
		end, err := a.resolve(*a.end)
		if err != nil {
			return nil, err
		}
		p.End = end
	}
	if p.Start > p.End {
		return nil, fmt.Errorf("entry %d is after end %d", p.Start, p.End)
	}
	return p, nil
}
