package encode

import (
	"github.com/pkg/errors"

	"github.com/soypat/fortran-asr"
)

func unknownNode(kind string, node any) error {
	return errors.Errorf("encode: unknown %s kind %T", kind, node)
}

func malformedTag(kind string, t tag) error {
	return errors.Wrapf(asr.ErrMalformedStream, "unexpected %s tag %d", kind, t)
}
