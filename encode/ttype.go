package encode

import "github.com/soypat/fortran-asr"

func (e *Encoder) writeTtype(t asr.Ttype) error {
	if t == nil {
		return writeTag(e.w, tagNil)
	}
	switch x := t.(type) {
	case *asr.Integer:
		if err := writeTag(e.w, tagInteger); err != nil {
			return err
		}
		if err := writeVarint(e.w, int64(x.Kind)); err != nil {
			return err
		}
		return e.writeDims(x.Dims)
	case *asr.Real:
		if err := writeTag(e.w, tagReal); err != nil {
			return err
		}
		if err := writeVarint(e.w, int64(x.Kind)); err != nil {
			return err
		}
		return e.writeDims(x.Dims)
	case *asr.Complex:
		if err := writeTag(e.w, tagComplex); err != nil {
			return err
		}
		if err := writeVarint(e.w, int64(x.Kind)); err != nil {
			return err
		}
		return e.writeDims(x.Dims)
	case *asr.Character:
		if err := writeTag(e.w, tagCharacter); err != nil {
			return err
		}
		if err := writeVarint(e.w, int64(x.Kind)); err != nil {
			return err
		}
		if err := writeVarint(e.w, int64(x.Length)); err != nil {
			return err
		}
		if err := e.writeExpr(x.LengthExpr); err != nil {
			return err
		}
		return e.writeDims(x.Dims)
	case *asr.Logical:
		if err := writeTag(e.w, tagLogical); err != nil {
			return err
		}
		if err := writeVarint(e.w, int64(x.Kind)); err != nil {
			return err
		}
		return e.writeDims(x.Dims)
	case *asr.List:
		if err := writeTag(e.w, tagList); err != nil {
			return err
		}
		return e.writeTtype(x.Element)
	case *asr.Set:
		if err := writeTag(e.w, tagSet); err != nil {
			return err
		}
		return e.writeTtype(x.Element)
	case *asr.Tuple:
		if err := writeTag(e.w, tagTuple); err != nil {
			return err
		}
		if err := writeUvarint(e.w, uint64(len(x.Elements))); err != nil {
			return err
		}
		for _, el := range x.Elements {
			if err := e.writeTtype(el); err != nil {
				return err
			}
		}
		return nil
	case *asr.Dict:
		if err := writeTag(e.w, tagDict); err != nil {
			return err
		}
		if err := e.writeTtype(x.Key); err != nil {
			return err
		}
		return e.writeTtype(x.Value)
	case *asr.Derived:
		if err := writeTag(e.w, tagDerived); err != nil {
			return err
		}
		if err := e.writeSymbol(x.TypeSymbol); err != nil {
			return err
		}
		return e.writeDims(x.Dims)
	case *asr.Class:
		if err := writeTag(e.w, tagClass); err != nil {
			return err
		}
		if err := e.writeSymbol(x.TypeSymbol); err != nil {
			return err
		}
		return e.writeDims(x.Dims)
	case *asr.Pointer:
		if err := writeTag(e.w, tagPointer); err != nil {
			return err
		}
		return e.writeTtype(x.Of)
	default:
		return unknownNode("ttype", t)
	}
}

func (d *Decoder) readTtype(enclosing *asr.Scope) (asr.Ttype, error) {
	t, err := readTag(d.r)
	if err != nil {
		return nil, err
	}
	switch t {
	case tagNil:
		return nil, nil
	case tagInteger:
		kind, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		dims, err := d.readDims(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Integer{Kind: int(kind), Dims: dims}, nil
	case tagReal:
		kind, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		dims, err := d.readDims(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Real{Kind: int(kind), Dims: dims}, nil
	case tagComplex:
		kind, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		dims, err := d.readDims(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Complex{Kind: int(kind), Dims: dims}, nil
	case tagCharacter:
		kind, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		length, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		lengthExpr, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		dims, err := d.readDims(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Character{Kind: int(kind), Length: int(length), LengthExpr: lengthExpr, Dims: dims}, nil
	case tagLogical:
		kind, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		dims, err := d.readDims(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Logical{Kind: int(kind), Dims: dims}, nil
	case tagList:
		el, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.List{Element: el}, nil
	case tagSet:
		el, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Set{Element: el}, nil
	case tagTuple:
		n, err := readUvarint(d.r)
		if err != nil {
			return nil, err
		}
		els := make([]asr.Ttype, n)
		for i := range els {
			els[i], err = d.readTtype(enclosing)
			if err != nil {
				return nil, err
			}
		}
		return &asr.Tuple{Elements: els}, nil
	case tagDict:
		key, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		val, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Dict{Key: key, Value: val}, nil
	case tagDerived:
		sym, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		dims, err := d.readDims(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Derived{TypeSymbol: sym, Dims: dims}, nil
	case tagClass:
		sym, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		dims, err := d.readDims(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Class{TypeSymbol: sym, Dims: dims}, nil
	case tagPointer:
		of, err := d.readTtype(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Pointer{Of: of}, nil
	default:
		return nil, malformedTag("ttype", t)
	}
}
