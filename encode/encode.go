// Package encode implements the ASR's deterministic, versioned binary
// serialization (§4.F, §7): a total, left-invertible mapping from a
// Unit to bytes and back. Symbols are cyclic (a recursive Function's
// own Variable can hold a Derived type pointing back at a DerivedType
// that embeds that Function again), so every symbol is assigned an
// in-stream ordinal the moment it is first encountered — before any of
// its fields are written — and every later reference to it is just
// that ordinal. Decode mirrors the discipline exactly: it allocates and
// registers a symbol's ordinal before decoding its fields, so a field
// that refers back to the symbol under construction resolves to the
// same pointer instead of looping.
package encode

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/soypat/fortran-asr"
)

// Encoder writes a stream of Units (though in practice one call site
// writes exactly one) sharing a single symbol-ordinal table, so that
// ExternalSymbols resolved against sibling modules already written to
// the same stream serialize as back-references instead of duplicating
// their target.
type Encoder struct {
	w           io.Writer
	ordinals    map[asr.Symbol]uint64
	next        uint64
	wroteHeader bool
}

// NewEncoder wraps w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, ordinals: make(map[asr.Symbol]uint64)}
}

// Encode writes u's header (on the first call from this Encoder) and
// body to the stream.
func (e *Encoder) Encode(u *asr.Unit) error {
	if !e.wroteHeader {
		if _, err := e.w.Write(magic[:]); err != nil {
			return errors.Wrap(err, "encode: header")
		}
		if err := writeUvarint(e.w, uint64(FormatVersion)); err != nil {
			return errors.Wrap(err, "encode: header")
		}
		e.wroteHeader = true
	}
	if err := writeUvarint(e.w, uint64(len(u.Items))); err != nil {
		return errors.Wrap(err, "encode: unit")
	}
	for _, item := range u.Items {
		if err := e.writeSymbol(item); err != nil {
			return errors.Wrap(err, "encode: unit item")
		}
	}
	return nil
}

// Encode is a convenience wrapper for the common one-shot case.
func Encode(w io.Writer, u *asr.Unit) error {
	return NewEncoder(w).Encode(u)
}

func (e *Encoder) writeSymbol(sym asr.Symbol) error {
	if sym == nil {
		return writeTag(e.w, tagNil)
	}
	if ordinal, ok := e.ordinals[sym]; ok {
		if err := writeTag(e.w, tagRef); err != nil {
			return err
		}
		return writeUvarint(e.w, ordinal)
	}
	ordinal := e.next
	e.next++
	e.ordinals[sym] = ordinal

	switch s := sym.(type) {
	case *asr.Program:
		if err := e.header(tagProgram, ordinal, s.Name); err != nil {
			return err
		}
		if err := e.writeScope(s.Scope); err != nil {
			return err
		}
		return e.writeStmts(s.Body)

	case *asr.Module:
		if err := e.header(tagModule, ordinal, s.Name); err != nil {
			return err
		}
		if err := e.writeEnum(s.ABI); err != nil {
			return err
		}
		if err := e.writeEnum(s.DefType); err != nil {
			return err
		}
		if err := e.writeEnum(s.Access); err != nil {
			return err
		}
		if err := writeUvarint(e.w, uint64(len(s.DeclOrder))); err != nil {
			return err
		}
		for _, name := range s.DeclOrder {
			if err := writeString(e.w, name); err != nil {
				return err
			}
		}
		return e.writeScope(s.Scope)

	case *asr.Subroutine:
		if err := e.header(tagSubroutine, ordinal, s.Name); err != nil {
			return err
		}
		if err := e.writeProcHeader(s.ABI, s.DefType, s.Access, s.Attributes); err != nil {
			return err
		}
		if err := e.writeVariableList(s.Args); err != nil {
			return err
		}
		if err := e.writeScope(s.Scope); err != nil {
			return err
		}
		return e.writeStmts(s.Body)

	case *asr.Function:
		if err := e.header(tagFunction, ordinal, s.Name); err != nil {
			return err
		}
		if err := e.writeProcHeader(s.ABI, s.DefType, s.Access, s.Attributes); err != nil {
			return err
		}
		if err := e.writeVariableList(s.Args); err != nil {
			return err
		}
		if err := e.writeSymbol(s.ReturnVar); err != nil {
			return err
		}
		if err := e.writeScope(s.Scope); err != nil {
			return err
		}
		return e.writeStmts(s.Body)

	case *asr.GenericProcedure:
		if err := e.header(tagGenericProcedure, ordinal, s.Name); err != nil {
			return err
		}
		return e.writeSymbolList(s.Procs)

	case *asr.CustomOperator:
		if err := e.header(tagCustomOperator, ordinal, s.Name); err != nil {
			return err
		}
		return e.writeSymbolList(s.Procs)

	case *asr.ExternalSymbol:
		if err := e.header(tagExternalSymbol, ordinal, s.Name); err != nil {
			return err
		}
		if err := writeString(e.w, s.ModuleName); err != nil {
			return err
		}
		if err := writeUvarint(e.w, uint64(len(s.ScopeNames))); err != nil {
			return err
		}
		for _, n := range s.ScopeNames {
			if err := writeString(e.w, n); err != nil {
				return err
			}
		}
		if err := writeString(e.w, s.OriginalName); err != nil {
			return err
		}
		return e.writeSymbol(s.External)

	case *asr.DerivedType:
		if err := e.header(tagDerivedType, ordinal, s.Name); err != nil {
			return err
		}
		if err := e.writeEnum(s.Access); err != nil {
			return err
		}
		if err := e.writeEnum(s.ABI); err != nil {
			return err
		}
		if err := e.writeEnum(s.DefType); err != nil {
			return err
		}
		if err := e.writeSymbol(s.Parent); err != nil {
			return err
		}
		return e.writeScope(s.Scope)

	case *asr.ClassType:
		if err := e.header(tagClassType, ordinal, s.Name); err != nil {
			return err
		}
		if err := e.writeEnum(s.Access); err != nil {
			return err
		}
		if err := e.writeSymbol(s.Parent); err != nil {
			return err
		}
		return e.writeScope(s.Scope)

	case *asr.ClassProcedure:
		if err := e.header(tagClassProcedure, ordinal, s.Name); err != nil {
			return err
		}
		if err := e.writeEnum(s.Access); err != nil {
			return err
		}
		if err := writeBool(e.w, s.IsFinal); err != nil {
			return err
		}
		return e.writeSymbol(s.Proc)

	case *asr.Variable:
		if err := e.header(tagVariable, ordinal, s.Name); err != nil {
			return err
		}
		if err := e.writeTtype(s.Type); err != nil {
			return err
		}
		if err := e.writeEnum(s.Intent); err != nil {
			return err
		}
		if err := e.writeEnum(s.Storage); err != nil {
			return err
		}
		if err := e.writeEnum(s.Presence); err != nil {
			return err
		}
		if err := e.writeEnum(s.Access); err != nil {
			return err
		}
		if err := writeBool(e.w, s.IsPointer); err != nil {
			return err
		}
		if err := writeBool(e.w, s.IsTarget); err != nil {
			return err
		}
		return e.writeExpr(s.Value)

	default:
		return errors.Errorf("encode: unknown symbol kind %T", sym)
	}
}

// header assigns/writes the common (tag, ordinal, name) prefix every
// symbol definition starts with.
func (e *Encoder) header(t tag, ordinal uint64, name string) error {
	if err := writeTag(e.w, t); err != nil {
		return err
	}
	if err := writeUvarint(e.w, ordinal); err != nil {
		return err
	}
	return writeString(e.w, name)
}

func (e *Encoder) writeProcHeader(abi asr.ABI, defType asr.DefType, access asr.Access, attrs asr.ProcAttrs) error {
	if err := e.writeEnum(abi); err != nil {
		return err
	}
	if err := e.writeEnum(defType); err != nil {
		return err
	}
	if err := e.writeEnum(access); err != nil {
		return err
	}
	if err := writeBool(e.w, attrs.Recursive); err != nil {
		return err
	}
	if err := writeBool(e.w, attrs.Pure); err != nil {
		return err
	}
	return writeBool(e.w, attrs.Elemental)
}

// writeEnum encodes any of the ASR's int-based leaf enums as a single
// varint; each is small (fits in a byte in practice) and a varint keeps
// the format unchanged if an enum grows. The decoder converts the value
// straight back to the enum type without checking that it names a
// declared constant, so an out-of-range value is not reported.
func (e *Encoder) writeEnum(v interface{ String() string }) error {
	// every enum here is a defined int type; use fmt-free reflection-less
	// path by relying on the concrete types passed in from writeSymbol.
	switch x := v.(type) {
	case asr.ABI:
		return writeVarint(e.w, int64(x))
	case asr.Access:
		return writeVarint(e.w, int64(x))
	case asr.Intent:
		return writeVarint(e.w, int64(x))
	case asr.StorageType:
		return writeVarint(e.w, int64(x))
	case asr.Presence:
		return writeVarint(e.w, int64(x))
	case asr.DefType:
		return writeVarint(e.w, int64(x))
	case asr.BoolOp:
		return writeVarint(e.w, int64(x))
	case asr.BinOp:
		return writeVarint(e.w, int64(x))
	case asr.UnaryOp:
		return writeVarint(e.w, int64(x))
	case asr.StrOp:
		return writeVarint(e.w, int64(x))
	case asr.CmpOp:
		return writeVarint(e.w, int64(x))
	case asr.CastKind:
		return writeVarint(e.w, int64(x))
	case asr.BOZ:
		return writeVarint(e.w, int64(x))
	default:
		return errors.Errorf("encode: unhandled enum type %T", v)
	}
}

func (e *Encoder) writeSymbolList(syms []asr.Symbol) error {
	if err := writeUvarint(e.w, uint64(len(syms))); err != nil {
		return err
	}
	for _, s := range syms {
		if err := e.writeSymbol(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeVariableList(vars []*asr.Variable) error {
	if err := writeUvarint(e.w, uint64(len(vars))); err != nil {
		return err
	}
	for _, v := range vars {
		if err := e.writeSymbol(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeScope(scope *asr.Scope) error {
	if scope == nil {
		return writeUvarint(e.w, 0)
	}
	members := scope.Iterate()
	if err := writeUvarint(e.w, uint64(len(members))); err != nil {
		return err
	}
	for _, sym := range members {
		if err := e.writeSymbol(sym); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeStmts(stmts []asr.Stmt) error {
	if err := writeUvarint(e.w, uint64(len(stmts))); err != nil {
		return err
	}
	for _, s := range stmts {
		if err := e.writeStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeExprList(exprs []asr.Expr) error {
	if err := writeUvarint(e.w, uint64(len(exprs))); err != nil {
		return err
	}
	for _, x := range exprs {
		if err := e.writeExpr(x); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeDims(dims []asr.Dimension) error {
	if err := writeUvarint(e.w, uint64(len(dims))); err != nil {
		return err
	}
	for _, d := range dims {
		if err := e.writeExpr(d.Lower); err != nil {
			return err
		}
		if err := e.writeExpr(d.Upper); err != nil {
			return err
		}
	}
	return nil
}

// NewBufferedEncoder wraps w in a bufio.Writer for callers writing many
// small fields to a slow sink (a file, a network connection); the
// caller is responsible for flushing the returned *bufio.Writer once
// Encode returns.
func NewBufferedEncoder(w io.Writer) (*Encoder, *bufio.Writer) {
	bw := bufio.NewWriter(w)
	return NewEncoder(bw), bw
}
