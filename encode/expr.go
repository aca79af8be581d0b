package encode

import "github.com/soypat/fortran-asr"

func (e *Encoder) writeExpr(x asr.Expr) error {
	if x == nil {
		return writeTag(e.w, tagNil)
	}
	switch n := x.(type) {
	case *asr.ConstantInteger:
		if err := writeTag(e.w, tagConstantInteger); err != nil {
			return err
		}
		if err := writeVarint(e.w, n.Val); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	case *asr.ConstantReal:
		if err := writeTag(e.w, tagConstantReal); err != nil {
			return err
		}
		if err := writeFloat64(e.w, n.Val); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	case *asr.ConstantComplex:
		if err := writeTag(e.w, tagConstantComplex); err != nil {
			return err
		}
		if err := writeFloat64(e.w, n.Re); err != nil {
			return err
		}
		if err := writeFloat64(e.w, n.Im); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	case *asr.ConstantLogical:
		if err := writeTag(e.w, tagConstantLogical); err != nil {
			return err
		}
		if err := writeBool(e.w, n.Val); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	case *asr.ConstantString:
		if err := writeTag(e.w, tagConstantString); err != nil {
			return err
		}
		if err := writeString(e.w, n.Val); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	case *asr.ConstantArray:
		if err := writeTag(e.w, tagConstantArray); err != nil {
			return err
		}
		if err := e.writeExprList(n.Vals); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	case *asr.ConstantBOZ:
		if err := writeTag(e.w, tagConstantBOZ); err != nil {
			return err
		}
		if err := e.writeEnum(n.Radix); err != nil {
			return err
		}
		if err := writeString(e.w, n.Raw); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	case *asr.Var:
		if err := writeTag(e.w, tagVar); err != nil {
			return err
		}
		if err := e.writeSymbol(n.Sym); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	case *asr.BinOpExpr:
		if err := writeTag(e.w, tagBinOpExpr); err != nil {
			return err
		}
		if err := e.writeEnum(n.Op); err != nil {
			return err
		}
		if err := e.writeExpr(n.Left); err != nil {
			return err
		}
		if err := e.writeExpr(n.Right); err != nil {
			return err
		}
		if err := e.writeTtype(n.Typ); err != nil {
			return err
		}
		if err := e.writeSymbol(n.Overloaded); err != nil {
			return err
		}
		return e.writeExpr(n.Value)

	case *asr.UnaryOpExpr:
		if err := writeTag(e.w, tagUnaryOpExpr); err != nil {
			return err
		}
		if err := e.writeEnum(n.Op); err != nil {
			return err
		}
		if err := e.writeExpr(n.Operand); err != nil {
			return err
		}
		if err := e.writeTtype(n.Typ); err != nil {
			return err
		}
		if err := e.writeSymbol(n.Overloaded); err != nil {
			return err
		}
		return e.writeExpr(n.Value)

	case *asr.BoolOpExpr:
		if err := writeTag(e.w, tagBoolOpExpr); err != nil {
			return err
		}
		if err := e.writeEnum(n.Op); err != nil {
			return err
		}
		if err := e.writeExpr(n.Left); err != nil {
			return err
		}
		if err := e.writeExpr(n.Right); err != nil {
			return err
		}
		if err := e.writeTtype(n.Typ); err != nil {
			return err
		}
		if err := e.writeSymbol(n.Overloaded); err != nil {
			return err
		}
		return e.writeExpr(n.Value)

	case *asr.StrOpExpr:
		if err := writeTag(e.w, tagStrOpExpr); err != nil {
			return err
		}
		if err := e.writeEnum(n.Op); err != nil {
			return err
		}
		if err := e.writeExpr(n.Left); err != nil {
			return err
		}
		if err := e.writeExpr(n.Right); err != nil {
			return err
		}
		if err := e.writeTtype(n.Typ); err != nil {
			return err
		}
		if err := e.writeSymbol(n.Overloaded); err != nil {
			return err
		}
		return e.writeExpr(n.Value)

	case *asr.Compare:
		if err := writeTag(e.w, tagCompare); err != nil {
			return err
		}
		if err := e.writeEnum(n.Op); err != nil {
			return err
		}
		if err := e.writeExpr(n.Left); err != nil {
			return err
		}
		if err := e.writeExpr(n.Right); err != nil {
			return err
		}
		if err := e.writeTtype(n.Typ); err != nil {
			return err
		}
		if err := e.writeSymbol(n.Overloaded); err != nil {
			return err
		}
		return e.writeExpr(n.Value)

	case *asr.Cast:
		if err := writeTag(e.w, tagCast); err != nil {
			return err
		}
		if err := e.writeEnum(n.Kind); err != nil {
			return err
		}
		if err := e.writeExpr(n.Arg); err != nil {
			return err
		}
		if err := e.writeTtype(n.Typ); err != nil {
			return err
		}
		return e.writeExpr(n.Value)

	case *asr.FunctionCall:
		if err := writeTag(e.w, tagFunctionCall); err != nil {
			return err
		}
		if err := e.writeSymbol(n.Name); err != nil {
			return err
		}
		if err := e.writeSymbol(n.OriginalName); err != nil {
			return err
		}
		if err := e.writeExprList(n.Args); err != nil {
			return err
		}
		if err := e.writeTtype(n.Typ); err != nil {
			return err
		}
		return e.writeExpr(n.Value)

	case *asr.ArrayItem:
		if err := writeTag(e.w, tagArrayItem); err != nil {
			return err
		}
		if err := e.writeExpr(n.Base); err != nil {
			return err
		}
		if err := e.writeExprList(n.Subscripts); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	case *asr.ArraySection:
		if err := writeTag(e.w, tagArraySection); err != nil {
			return err
		}
		if err := e.writeExpr(n.Base); err != nil {
			return err
		}
		if err := e.writeDims(n.Bounds); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	case *asr.ArrayConstructor:
		if err := writeTag(e.w, tagArrayConstructor); err != nil {
			return err
		}
		if err := e.writeExprList(n.Values); err != nil {
			return err
		}
		if err := e.writeTtype(n.Typ); err != nil {
			return err
		}
		return e.writeExpr(n.Value)

	case *asr.ImpliedDoLoop:
		if err := writeTag(e.w, tagImpliedDoLoop); err != nil {
			return err
		}
		if err := e.writeSymbol(n.Var); err != nil {
			return err
		}
		if err := e.writeExpr(n.Start); err != nil {
			return err
		}
		if err := e.writeExpr(n.End); err != nil {
			return err
		}
		if err := e.writeExpr(n.Stride); err != nil {
			return err
		}
		if err := e.writeExprList(n.Values); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	case *asr.StructMember:
		if err := writeTag(e.w, tagStructMember); err != nil {
			return err
		}
		if err := e.writeExpr(n.Base); err != nil {
			return err
		}
		if err := e.writeSymbol(n.Component); err != nil {
			return err
		}
		return e.writeTtype(n.Typ)

	default:
		return unknownNode("expr", x)
	}
}

func (d *Decoder) readExpr(enclosing *asr.Scope) (asr.Expr, error) {
	t, err := readTag(d.r)
	if err != nil {
		return nil, err
	}
	switch t {
	case tagNil:
		return nil, nil

	case tagConstantInteger:
		val, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ConstantInteger{Val: val, Typ: typ}, nil

	case tagConstantReal:
		val, err := readFloat64(d.r)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ConstantReal{Val: val, Typ: typ}, nil

	case tagConstantComplex:
		re, err := readFloat64(d.r)
		if err != nil {
			return nil, err
		}
		im, err := readFloat64(d.r)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ConstantComplex{Re: re, Im: im, Typ: typ}, nil

	case tagConstantLogical:
		val, err := readBool(d.r)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ConstantLogical{Val: val, Typ: typ}, nil

	case tagConstantString:
		val, err := readString(d.r)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ConstantString{Val: val, Typ: typ}, nil

	case tagConstantArray:
		vals, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ConstantArray{Vals: vals, Typ: typ}, nil

	case tagConstantBOZ:
		radix, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		raw, err := readString(d.r)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ConstantBOZ{Radix: asr.BOZ(radix), Raw: raw, Typ: typ}, nil

	case tagVar:
		sym, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Var{Sym: sym, Typ: typ}, nil

	case tagBinOpExpr:
		op, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		left, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		right, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		overload, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		value, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		n := &asr.BinOpExpr{Op: asr.BinOp(op), Left: left, Right: right, Typ: typ, Overloaded: overload}
		n.Value = value
		return n, nil

	case tagUnaryOpExpr:
		op, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		operand, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		overload, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		value, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		n := &asr.UnaryOpExpr{Op: asr.UnaryOp(op), Operand: operand, Typ: typ, Overloaded: overload}
		n.Value = value
		return n, nil

	case tagBoolOpExpr:
		op, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		left, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		right, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		overload, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		value, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		n := &asr.BoolOpExpr{Op: asr.BoolOp(op), Left: left, Right: right, Typ: typ, Overloaded: overload}
		n.Value = value
		return n, nil

	case tagStrOpExpr:
		op, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		left, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		right, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		overload, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		value, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		n := &asr.StrOpExpr{Op: asr.StrOp(op), Left: left, Right: right, Typ: typ, Overloaded: overload}
		n.Value = value
		return n, nil

	case tagCompare:
		op, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		left, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		right, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		overload, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		value, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		n := &asr.Compare{Op: asr.CmpOp(op), Left: left, Right: right, Typ: typ, Overloaded: overload}
		n.Value = value
		return n, nil

	case tagCast:
		kind, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		arg, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		value, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		n := &asr.Cast{Kind: asr.CastKind(kind), Arg: arg, Typ: typ}
		n.Value = value
		return n, nil

	case tagFunctionCall:
		name, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		orig, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		args, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		value, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		n := &asr.FunctionCall{Name: name, OriginalName: orig, Args: args, Typ: typ}
		n.Value = value
		return n, nil

	case tagArrayItem:
		base, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		subs, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ArrayItem{Base: base, Subscripts: subs, Typ: typ}, nil

	case tagArraySection:
		base, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		bounds, err := d.readDims(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ArraySection{Base: base, Bounds: bounds, Typ: typ}, nil

	case tagArrayConstructor:
		values, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		value, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		n := &asr.ArrayConstructor{Values: values, Typ: typ}
		n.Value = value
		return n, nil

	case tagImpliedDoLoop:
		v, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		var loopVar *asr.Variable
		if v != nil {
			var ok bool
			loopVar, ok = v.(*asr.Variable)
			if !ok {
				return nil, malformedTag("ImpliedDoLoop.Var", t)
			}
		}
		start, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		end, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		stride, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		values, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ImpliedDoLoop{Var: loopVar, Start: start, End: end, Stride: stride, Values: values, Typ: typ}, nil

	case tagStructMember:
		base, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		comp, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		typ, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.StructMember{Base: base, Component: comp, Typ: typ}, nil

	default:
		return nil, malformedTag("expr", t)
	}
}

func (d *Decoder) readExprList(enclosing *asr.Scope) ([]asr.Expr, error) {
	n, err := readUvarint(d.r)
	if err != nil {
		return nil, err
	}
	out := make([]asr.Expr, n)
	for i := range out {
		if out[i], err = d.readExpr(enclosing); err != nil {
			return nil, err
		}
	}
	return out, nil
}
