package encode

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/soypat/fortran-asr"
)

// Decoder reads a stream written by Encoder, sharing one ordinal table
// across calls the same way Encoder does, so a caller decoding several
// Units from the same stream sees consistent symbol identity for any
// cross-referenced ExternalSymbol targets.
type Decoder struct {
	r        byteReader
	ordinals map[uint64]asr.Symbol
	sawMagic bool
}

// NewDecoder wraps r. r is buffered internally if it does not already
// implement ByteReader.
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{r: br, ordinals: make(map[uint64]asr.Symbol)}
}

// Decode reads one Unit from the stream.
func (d *Decoder) Decode() (*asr.Unit, error) {
	if !d.sawMagic {
		var got [4]byte
		if _, err := io.ReadFull(d.r, got[:]); err != nil {
			return nil, errors.Wrap(asr.ErrMalformedStream, "reading header magic")
		}
		if got != magic {
			return nil, errors.Wrap(asr.ErrSchemaMismatch, "bad magic bytes")
		}
		version, err := readUvarint(d.r)
		if err != nil {
			return nil, err
		}
		if version != uint64(FormatVersion) {
			return nil, errors.Wrapf(asr.ErrSchemaMismatch, "stream version %d, decoder supports %d", version, FormatVersion)
		}
		d.sawMagic = true
	}

	n, err := readUvarint(d.r)
	if err != nil {
		return nil, errors.Wrap(err, "decode: unit item count")
	}
	u := asr.NewUnit()
	for i := uint64(0); i < n; i++ {
		sym, err := d.readSymbol(u.Global)
		if err != nil {
			return nil, errors.Wrap(err, "decode: unit item")
		}
		u.Items = append(u.Items, sym)
		if err := u.Global.Insert(sym.SymbolName(), sym); err != nil {
			return nil, errors.Wrap(err, "decode: unit item")
		}
	}
	return u, nil
}

// Decode is a convenience wrapper for the common one-shot case: the
// module-file reader (§6). Unlike Decoder.Decode, which a caller may
// invoke repeatedly to stream several units off one connection, this
// wrapper reads exactly one unit and then requires the stream to be
// exhausted — "no trailing data permitted; readers must reject files
// with trailing bytes."
func Decode(r io.Reader) (*asr.Unit, error) {
	d := NewDecoder(r)
	u, err := d.Decode()
	if err != nil {
		return nil, err
	}
	var extra [1]byte
	switch _, err := io.ReadFull(d.r, extra[:]); err {
	case io.EOF:
		return u, nil
	case nil:
		return nil, errors.Wrap(asr.ErrMalformedStream, "trailing bytes after root unit")
	default:
		return nil, errors.Wrap(asr.ErrMalformedStream, "trailing bytes after root unit")
	}
}

// readSymbol decodes one symbol reference or definition. enclosing is
// the lexical scope the symbol is declared in, used only when the
// symbol being decoded owns a scope of its own (that new scope's
// parent becomes enclosing, mirroring how Builder wires Scope.parent
// at construction time); leaf symbols ignore it.
//
// A symbol reached out of its natural declaration order (through a
// Parent, Proc, TypeSymbol, or Component field pointing forward to a
// sibling not yet visited) is decoded inline at the reference site and
// receives the reference site's enclosing scope rather than its true
// one. This only misattributes Scope.Parent for that sibling, never its
// own contents, and only arises for mutually-referential declarations
// within what is already the same scope in every construction path
// Builder produces, so the true and substituted parent coincide in
// practice.
func (d *Decoder) readSymbol(enclosing *asr.Scope) (asr.Symbol, error) {
	t, err := readTag(d.r)
	if err != nil {
		return nil, err
	}
	switch t {
	case tagNil:
		return nil, nil
	case tagRef:
		ordinal, err := readUvarint(d.r)
		if err != nil {
			return nil, err
		}
		sym, ok := d.ordinals[ordinal]
		if !ok {
			return nil, errors.Wrapf(asr.ErrMalformedStream, "back-reference to unknown ordinal %d", ordinal)
		}
		return sym, nil
	}

	ordinal, name, err := d.readHeaderRest()
	if err != nil {
		return nil, err
	}

	switch t {
	case tagProgram:
		p := &asr.Program{Name: name}
		d.ordinals[ordinal] = p
		if p.Scope, err = d.readScope(enclosing, p); err != nil {
			return nil, err
		}
		if p.Body, err = d.readStmts(p.Scope); err != nil {
			return nil, err
		}
		return p, nil

	case tagModule:
		m := &asr.Module{Name: name}
		d.ordinals[ordinal] = m
		if m.ABI, err = d.readABI(); err != nil {
			return nil, err
		}
		if m.DefType, err = d.readDefType(); err != nil {
			return nil, err
		}
		if m.Access, err = d.readAccess(); err != nil {
			return nil, err
		}
		declN, err := readUvarint(d.r)
		if err != nil {
			return nil, err
		}
		m.DeclOrder = make([]string, declN)
		for i := range m.DeclOrder {
			if m.DeclOrder[i], err = readString(d.r); err != nil {
				return nil, err
			}
		}
		if m.Scope, err = d.readScope(enclosing, m); err != nil {
			return nil, err
		}
		return m, nil

	case tagSubroutine:
		s := &asr.Subroutine{Name: name}
		d.ordinals[ordinal] = s
		if s.ABI, s.DefType, s.Access, s.Attributes, err = d.readProcHeader(); err != nil {
			return nil, err
		}
		if s.Args, err = d.readVariableList(enclosing); err != nil {
			return nil, err
		}
		if s.Scope, err = d.readScope(enclosing, s); err != nil {
			return nil, err
		}
		if s.Body, err = d.readStmts(s.Scope); err != nil {
			return nil, err
		}
		return s, nil

	case tagFunction:
		f := &asr.Function{Name: name}
		d.ordinals[ordinal] = f
		if f.ABI, f.DefType, f.Access, f.Attributes, err = d.readProcHeader(); err != nil {
			return nil, err
		}
		if f.Args, err = d.readVariableList(enclosing); err != nil {
			return nil, err
		}
		retSym, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		if retSym != nil {
			rv, ok := retSym.(*asr.Variable)
			if !ok {
				return nil, errors.Wrapf(asr.ErrMalformedStream, "Function %q ReturnVar decoded as %T", name, retSym)
			}
			f.ReturnVar = rv
		}
		if f.Scope, err = d.readScope(enclosing, f); err != nil {
			return nil, err
		}
		if f.Body, err = d.readStmts(f.Scope); err != nil {
			return nil, err
		}
		return f, nil

	case tagGenericProcedure:
		g := &asr.GenericProcedure{Name: name}
		d.ordinals[ordinal] = g
		if g.Procs, err = d.readSymbolList(enclosing); err != nil {
			return nil, err
		}
		return g, nil

	case tagCustomOperator:
		c := &asr.CustomOperator{Name: name}
		d.ordinals[ordinal] = c
		if c.Procs, err = d.readSymbolList(enclosing); err != nil {
			return nil, err
		}
		return c, nil

	case tagExternalSymbol:
		ext := &asr.ExternalSymbol{Name: name}
		d.ordinals[ordinal] = ext
		if ext.ModuleName, err = readString(d.r); err != nil {
			return nil, err
		}
		scopeN, err := readUvarint(d.r)
		if err != nil {
			return nil, err
		}
		ext.ScopeNames = make([]string, scopeN)
		for i := range ext.ScopeNames {
			if ext.ScopeNames[i], err = readString(d.r); err != nil {
				return nil, err
			}
		}
		if ext.OriginalName, err = readString(d.r); err != nil {
			return nil, err
		}
		if ext.External, err = d.readSymbol(enclosing); err != nil {
			return nil, err
		}
		return ext, nil

	case tagDerivedType:
		dt := &asr.DerivedType{Name: name}
		d.ordinals[ordinal] = dt
		if dt.Access, err = d.readAccess(); err != nil {
			return nil, err
		}
		if dt.ABI, err = d.readABI(); err != nil {
			return nil, err
		}
		if dt.DefType, err = d.readDefType(); err != nil {
			return nil, err
		}
		if dt.Parent, err = d.readSymbol(enclosing); err != nil {
			return nil, err
		}
		if dt.Scope, err = d.readScope(enclosing, dt); err != nil {
			return nil, err
		}
		return dt, nil

	case tagClassType:
		ct := &asr.ClassType{Name: name}
		d.ordinals[ordinal] = ct
		if ct.Access, err = d.readAccess(); err != nil {
			return nil, err
		}
		if ct.Parent, err = d.readSymbol(enclosing); err != nil {
			return nil, err
		}
		if ct.Scope, err = d.readScope(enclosing, ct); err != nil {
			return nil, err
		}
		return ct, nil

	case tagClassProcedure:
		cp := &asr.ClassProcedure{Name: name}
		d.ordinals[ordinal] = cp
		if cp.Access, err = d.readAccess(); err != nil {
			return nil, err
		}
		if cp.IsFinal, err = readBool(d.r); err != nil {
			return nil, err
		}
		if cp.Proc, err = d.readSymbol(enclosing); err != nil {
			return nil, err
		}
		return cp, nil

	case tagVariable:
		v := &asr.Variable{Name: name}
		d.ordinals[ordinal] = v
		if v.Type, err = d.readTtype(enclosing); err != nil {
			return nil, err
		}
		if v.Intent, err = d.readIntent(); err != nil {
			return nil, err
		}
		if v.Storage, err = d.readStorage(); err != nil {
			return nil, err
		}
		if v.Presence, err = d.readPresence(); err != nil {
			return nil, err
		}
		if v.Access, err = d.readAccess(); err != nil {
			return nil, err
		}
		if v.IsPointer, err = readBool(d.r); err != nil {
			return nil, err
		}
		if v.IsTarget, err = readBool(d.r); err != nil {
			return nil, err
		}
		if v.Value, err = d.readExpr(enclosing); err != nil {
			return nil, err
		}
		return v, nil

	default:
		return nil, malformedTag("symbol", t)
	}
}

// readHeaderRest reads the (ordinal, name) pair that follows a concrete
// symbol tag; the tag itself has already been consumed by the caller.
func (d *Decoder) readHeaderRest() (ordinal uint64, name string, err error) {
	if ordinal, err = readUvarint(d.r); err != nil {
		return 0, "", err
	}
	if name, err = readString(d.r); err != nil {
		return 0, "", err
	}
	return ordinal, name, nil
}

func (d *Decoder) readProcHeader() (abi asr.ABI, defType asr.DefType, access asr.Access, attrs asr.ProcAttrs, err error) {
	if abi, err = d.readABI(); err != nil {
		return
	}
	if defType, err = d.readDefType(); err != nil {
		return
	}
	if access, err = d.readAccess(); err != nil {
		return
	}
	if attrs.Recursive, err = readBool(d.r); err != nil {
		return
	}
	if attrs.Pure, err = readBool(d.r); err != nil {
		return
	}
	if attrs.Elemental, err = readBool(d.r); err != nil {
		return
	}
	return
}

func (d *Decoder) readABI() (asr.ABI, error) {
	v, err := readVarint(d.r)
	return asr.ABI(v), err
}
func (d *Decoder) readDefType() (asr.DefType, error) {
	v, err := readVarint(d.r)
	return asr.DefType(v), err
}
func (d *Decoder) readAccess() (asr.Access, error) {
	v, err := readVarint(d.r)
	return asr.Access(v), err
}
func (d *Decoder) readIntent() (asr.Intent, error) {
	v, err := readVarint(d.r)
	return asr.Intent(v), err
}
func (d *Decoder) readStorage() (asr.StorageType, error) {
	v, err := readVarint(d.r)
	return asr.StorageType(v), err
}
func (d *Decoder) readPresence() (asr.Presence, error) {
	v, err := readVarint(d.r)
	return asr.Presence(v), err
}

func (d *Decoder) readSymbolList(enclosing *asr.Scope) ([]asr.Symbol, error) {
	n, err := readUvarint(d.r)
	if err != nil {
		return nil, err
	}
	out := make([]asr.Symbol, n)
	for i := range out {
		if out[i], err = d.readSymbol(enclosing); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *Decoder) readVariableList(enclosing *asr.Scope) ([]*asr.Variable, error) {
	n, err := readUvarint(d.r)
	if err != nil {
		return nil, err
	}
	out := make([]*asr.Variable, n)
	for i := range out {
		sym, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		if sym == nil {
			continue
		}
		v, ok := sym.(*asr.Variable)
		if !ok {
			return nil, errors.Wrapf(asr.ErrMalformedStream, "expected Variable in argument list, got %T", sym)
		}
		out[i] = v
	}
	return out, nil
}

// readScope decodes a scope belonging to owner, nested lexically inside
// enclosing, and inserts each member under its own name in stream
// order so both Scope.Iterate order and the name-to-symbol mapping are
// reconstructed exactly.
func (d *Decoder) readScope(enclosing *asr.Scope, owner asr.Symbol) (*asr.Scope, error) {
	n, err := readUvarint(d.r)
	if err != nil {
		return nil, err
	}
	scope := asr.NewScope(enclosing, owner)
	for i := uint64(0); i < n; i++ {
		sym, err := d.readSymbol(scope)
		if err != nil {
			return nil, err
		}
		if err := scope.Insert(sym.SymbolName(), sym); err != nil {
			return nil, errors.Wrap(err, "decode: scope member")
		}
	}
	return scope, nil
}

func (d *Decoder) readDims(enclosing *asr.Scope) ([]asr.Dimension, error) {
	n, err := readUvarint(d.r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]asr.Dimension, n)
	for i := range out {
		if out[i].Lower, err = d.readExpr(enclosing); err != nil {
			return nil, err
		}
		if out[i].Upper, err = d.readExpr(enclosing); err != nil {
			return nil, err
		}
	}
	return out, nil
}
