package asr

// Code generated by stringer would normally produce this file; committed
// by hand here since `go generate` is not run as part of building this
// module. Keep in sync with enums.go if a variant is added or reordered.

func (i ABI) String() string {
	switch i {
	case Source:
		return "Source"
	case LFortranModule:
		return "LFortranModule"
	case GFortranModule:
		return "GFortranModule"
	case BindC:
		return "BindC"
	case Interactive:
		return "Interactive"
	case Intrinsic:
		return "Intrinsic"
	default:
		return "ABI(?)"
	}
}

func (i Access) String() string {
	if i == Private {
		return "Private"
	}
	return "Public"
}

func (i Intent) String() string {
	switch i {
	case IntentLocal:
		return "Local"
	case IntentIn:
		return "In"
	case IntentOut:
		return "Out"
	case IntentInOut:
		return "InOut"
	case ReturnVar:
		return "ReturnVar"
	case IntentUnspecified:
		return "Unspecified"
	default:
		return "Intent(?)"
	}
}

func (i StorageType) String() string {
	switch i {
	case StorageDefault:
		return "Default"
	case StorageSave:
		return "Save"
	case StorageParameter:
		return "Parameter"
	case StorageAllocatable:
		return "Allocatable"
	case StoragePointer:
		return "Pointer"
	default:
		return "StorageType(?)"
	}
}

func (i Presence) String() string {
	if i == Optional {
		return "Optional"
	}
	return "Required"
}

func (i DefType) String() string {
	if i == Interface {
		return "Interface"
	}
	return "Implementation"
}

func (i BoolOp) String() string {
	switch i {
	case And:
		return "And"
	case Or:
		return "Or"
	case Eqv:
		return "Eqv"
	case NEqv:
		return "NEqv"
	default:
		return "BoolOp(?)"
	}
}

func (i BinOp) String() string {
	switch i {
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	case Pow:
		return "Pow"
	default:
		return "BinOp(?)"
	}
}

func (i UnaryOp) String() string {
	switch i {
	case UnaryPlus:
		return "UnaryPlus"
	case UnaryMinus:
		return "UnaryMinus"
	case Not:
		return "Not"
	default:
		return "UnaryOp(?)"
	}
}

func (i StrOp) String() string {
	if i == Concat {
		return "Concat"
	}
	return "StrOp(?)"
}

func (i CmpOp) String() string {
	switch i {
	case CmpEq:
		return "Eq"
	case CmpNotEq:
		return "NotEq"
	case CmpLt:
		return "Lt"
	case CmpLtE:
		return "LtE"
	case CmpGt:
		return "Gt"
	case CmpGtE:
		return "GtE"
	default:
		return "CmpOp(?)"
	}
}

func (i CastKind) String() string {
	switch i {
	case IntegerToReal:
		return "IntegerToReal"
	case RealToInteger:
		return "RealToInteger"
	case RealToReal:
		return "RealToReal"
	case IntegerToInteger:
		return "IntegerToInteger"
	case IntegerToLogical:
		return "IntegerToLogical"
	case LogicalToInteger:
		return "LogicalToInteger"
	case RealToComplex:
		return "RealToComplex"
	case ComplexToReal:
		return "ComplexToReal"
	case IntegerToCharacter:
		return "IntegerToCharacter"
	case CharacterToInteger:
		return "CharacterToInteger"
	default:
		return "CastKind(?)"
	}
}

func (i BOZ) String() string {
	switch i {
	case Binary:
		return "Binary"
	case Octal:
		return "Octal"
	case Hex:
		return "Hex"
	default:
		return "BOZ(?)"
	}
}
