package encode

import "github.com/soypat/fortran-asr"

func (e *Encoder) writeStmt(s asr.Stmt) error {
	if s == nil {
		return writeTag(e.w, tagNil)
	}
	switch n := s.(type) {
	case *asr.DoLoop:
		if err := writeTag(e.w, tagDoLoop); err != nil {
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
		return e.writeStmts(n.Body)

	case *asr.WhileLoop:
		if err := writeTag(e.w, tagWhileLoop); err != nil {
			return err
		}
		if err := e.writeExpr(n.Cond); err != nil {
			return err
		}
		return e.writeStmts(n.Body)

	case *asr.If:
		if err := writeTag(e.w, tagIf); err != nil {
			return err
		}
		if err := e.writeExpr(n.Cond); err != nil {
			return err
		}
		if err := e.writeStmts(n.Then); err != nil {
			return err
		}
		return e.writeStmts(n.Else)

	case *asr.SelectCase:
		if err := writeTag(e.w, tagSelectCase); err != nil {
			return err
		}
		if err := e.writeExpr(n.Test); err != nil {
			return err
		}
		if err := writeUvarint(e.w, uint64(len(n.Cases))); err != nil {
			return err
		}
		for _, c := range n.Cases {
			if err := e.writeExprList(c.Values); err != nil {
				return err
			}
			if err := e.writeStmts(c.Body); err != nil {
				return err
			}
		}
		return e.writeStmts(n.Default)

	case *asr.CycleStmt:
		return writeTag(e.w, tagCycleStmt)

	case *asr.ExitStmt:
		return writeTag(e.w, tagExitStmt)

	case *asr.Print:
		if err := writeTag(e.w, tagPrint); err != nil {
			return err
		}
		if err := e.writeExpr(n.Format); err != nil {
			return err
		}
		return e.writeExprList(n.Items)

	case *asr.Open:
		if err := writeTag(e.w, tagOpen); err != nil {
			return err
		}
		return e.writeIOSpecs(n.Specifiers)

	case *asr.Close:
		if err := writeTag(e.w, tagClose); err != nil {
			return err
		}
		return e.writeIOSpecs(n.Specifiers)

	case *asr.Read:
		if err := writeTag(e.w, tagRead); err != nil {
			return err
		}
		if err := e.writeExpr(n.Unit); err != nil {
			return err
		}
		if err := e.writeExpr(n.Format); err != nil {
			return err
		}
		if err := e.writeIOSpecs(n.Specifiers); err != nil {
			return err
		}
		return e.writeExprList(n.Items)

	case *asr.Write:
		if err := writeTag(e.w, tagWrite); err != nil {
			return err
		}
		if err := e.writeExpr(n.Unit); err != nil {
			return err
		}
		if err := e.writeExpr(n.Format); err != nil {
			return err
		}
		if err := e.writeIOSpecs(n.Specifiers); err != nil {
			return err
		}
		return e.writeExprList(n.Items)

	case *asr.Inquire:
		if err := writeTag(e.w, tagInquire); err != nil {
			return err
		}
		if err := e.writeIOSpecs(n.Specifiers); err != nil {
			return err
		}
		return e.writeExprList(n.Items)

	case *asr.Rewind:
		if err := writeTag(e.w, tagRewind); err != nil {
			return err
		}
		return e.writeIOSpecs(n.Specifiers)

	case *asr.Flush:
		if err := writeTag(e.w, tagFlush); err != nil {
			return err
		}
		return e.writeIOSpecs(n.Specifiers)

	case *asr.Allocate:
		if err := writeTag(e.w, tagAllocate); err != nil {
			return err
		}
		if err := e.writeExprList(n.Objects); err != nil {
			return err
		}
		return e.writeIOSpecs(n.Options)

	case *asr.ExplicitDeallocate:
		if err := writeTag(e.w, tagExplicitDeallocate); err != nil {
			return err
		}
		if err := e.writeExprList(n.Objects); err != nil {
			return err
		}
		return e.writeIOSpecs(n.Options)

	case *asr.ImplicitDeallocate:
		if err := writeTag(e.w, tagImplicitDeallocate); err != nil {
			return err
		}
		return e.writeExprList(n.Objects)

	case *asr.Nullify:
		if err := writeTag(e.w, tagNullify); err != nil {
			return err
		}
		return e.writeExprList(n.Objects)

	case *asr.Assert:
		if err := writeTag(e.w, tagAssert); err != nil {
			return err
		}
		if err := e.writeExpr(n.Test); err != nil {
			return err
		}
		return e.writeExpr(n.Msg)

	case *asr.SubroutineCall:
		if err := writeTag(e.w, tagSubroutineCall); err != nil {
			return err
		}
		if err := e.writeSymbol(n.Name); err != nil {
			return err
		}
		if err := e.writeSymbol(n.OriginalName); err != nil {
			return err
		}
		return e.writeExprList(n.Args)

	case *asr.Assignment:
		if err := writeTag(e.w, tagAssignment); err != nil {
			return err
		}
		if err := e.writeExpr(n.Target); err != nil {
			return err
		}
		return e.writeExpr(n.Value)

	case *asr.GoTo:
		if err := writeTag(e.w, tagGoTo); err != nil {
			return err
		}
		return writeVarint(e.w, int64(n.ID))

	case *asr.GoToTarget:
		if err := writeTag(e.w, tagGoToTarget); err != nil {
			return err
		}
		return writeVarint(e.w, int64(n.ID))

	case *asr.Return:
		if err := writeTag(e.w, tagReturn); err != nil {
			return err
		}
		return e.writeExpr(n.AltReturn)

	default:
		return unknownNode("stmt", s)
	}
}

func (e *Encoder) writeIOSpecs(specs []asr.IOSpec) error {
	if err := writeUvarint(e.w, uint64(len(specs))); err != nil {
		return err
	}
	for _, s := range specs {
		if err := writeString(e.w, s.Key); err != nil {
			return err
		}
		if err := e.writeExpr(s.Value); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) readStmt(enclosing *asr.Scope) (asr.Stmt, error) {
	t, err := readTag(d.r)
	if err != nil {
		return nil, err
	}
	switch t {
	case tagNil:
		return nil, nil

	case tagDoLoop:
		v, err := d.readSymbol(enclosing)
		if err != nil {
			return nil, err
		}
		var loopVar *asr.Variable
		if v != nil {
			var ok bool
			loopVar, ok = v.(*asr.Variable)
			if !ok {
				return nil, malformedTag("DoLoop.Var", t)
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
		body, err := d.readStmts(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.DoLoop{Var: loopVar, Start: start, End: end, Stride: stride, Body: body}, nil

	case tagWhileLoop:
		cond, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		body, err := d.readStmts(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.WhileLoop{Cond: cond, Body: body}, nil

	case tagIf:
		cond, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		then, err := d.readStmts(enclosing)
		if err != nil {
			return nil, err
		}
		els, err := d.readStmts(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.If{Cond: cond, Then: then, Else: els}, nil

	case tagSelectCase:
		test, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		n, err := readUvarint(d.r)
		if err != nil {
			return nil, err
		}
		cases := make([]asr.CaseStmt, n)
		for i := range cases {
			if cases[i].Values, err = d.readExprList(enclosing); err != nil {
				return nil, err
			}
			if cases[i].Body, err = d.readStmts(enclosing); err != nil {
				return nil, err
			}
		}
		def, err := d.readStmts(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.SelectCase{Test: test, Cases: cases, Default: def}, nil

	case tagCycleStmt:
		return &asr.CycleStmt{}, nil

	case tagExitStmt:
		return &asr.ExitStmt{}, nil

	case tagPrint:
		format, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		items, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Print{Format: format, Items: items}, nil

	case tagOpen:
		specs, err := d.readIOSpecs(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Open{Specifiers: specs}, nil

	case tagClose:
		specs, err := d.readIOSpecs(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Close{Specifiers: specs}, nil

	case tagRead:
		unit, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		format, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		specs, err := d.readIOSpecs(enclosing)
		if err != nil {
			return nil, err
		}
		items, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Read{Unit: unit, Format: format, Specifiers: specs, Items: items}, nil

	case tagWrite:
		unit, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		format, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		specs, err := d.readIOSpecs(enclosing)
		if err != nil {
			return nil, err
		}
		items, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Write{Unit: unit, Format: format, Specifiers: specs, Items: items}, nil

	case tagInquire:
		specs, err := d.readIOSpecs(enclosing)
		if err != nil {
			return nil, err
		}
		items, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Inquire{Specifiers: specs, Items: items}, nil

	case tagRewind:
		specs, err := d.readIOSpecs(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Rewind{Specifiers: specs}, nil

	case tagFlush:
		specs, err := d.readIOSpecs(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Flush{Specifiers: specs}, nil

	case tagAllocate:
		objs, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		opts, err := d.readIOSpecs(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Allocate{Objects: objs, Options: opts}, nil

	case tagExplicitDeallocate:
		objs, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		opts, err := d.readIOSpecs(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ExplicitDeallocate{Objects: objs, Options: opts}, nil

	case tagImplicitDeallocate:
		objs, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.ImplicitDeallocate{Objects: objs}, nil

	case tagNullify:
		objs, err := d.readExprList(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Nullify{Objects: objs}, nil

	case tagAssert:
		test, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		msg, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Assert{Test: test, Msg: msg}, nil

	case tagSubroutineCall:
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
		return &asr.SubroutineCall{Name: name, OriginalName: orig, Args: args}, nil

	case tagAssignment:
		target, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		value, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Assignment{Target: target, Value: value}, nil

	case tagGoTo:
		id, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		return &asr.GoTo{ID: int(id)}, nil

	case tagGoToTarget:
		id, err := readVarint(d.r)
		if err != nil {
			return nil, err
		}
		return &asr.GoToTarget{ID: int(id)}, nil

	case tagReturn:
		alt, err := d.readExpr(enclosing)
		if err != nil {
			return nil, err
		}
		return &asr.Return{AltReturn: alt}, nil

	default:
		return nil, malformedTag("stmt", t)
	}
}

func (d *Decoder) readStmts(enclosing *asr.Scope) ([]asr.Stmt, error) {
	n, err := readUvarint(d.r)
	if err != nil {
		return nil, err
	}
	out := make([]asr.Stmt, n)
	for i := range out {
		if out[i], err = d.readStmt(enclosing); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *Decoder) readIOSpecs(enclosing *asr.Scope) ([]asr.IOSpec, error) {
	n, err := readUvarint(d.r)
	if err != nil {
		return nil, err
	}
	out := make([]asr.IOSpec, n)
	for i := range out {
		if out[i].Key, err = readString(d.r); err != nil {
			return nil, err
		}
		if out[i].Value, err = d.readExpr(enclosing); err != nil {
			return nil, err
		}
	}
	return out, nil
}
