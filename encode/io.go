package encode

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/soypat/fortran-asr"
)

func writeUvarint(w io.Writer, x uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], x)
	_, err := w.Write(buf[:n])
	return err
}

func writeVarint(w io.Writer, x int64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], x)
	_, err := w.Write(buf[:n])
	return err
}

func writeString(w io.Writer, s string) error {
	if err := writeUvarint(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeFloat64(w io.Writer, f float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	_, err := w.Write(buf[:])
	return err
}

func writeBool(w io.Writer, b bool) error {
	if b {
		_, err := w.Write([]byte{1})
		return err
	}
	_, err := w.Write([]byte{0})
	return err
}

func writeTag(w io.Writer, t tag) error {
	_, err := w.Write([]byte{byte(t)})
	return err
}

// byteReader is what every read helper needs: ReadByte for varints,
// plus plain Read for fixed-size fields.
type byteReader interface {
	io.Reader
	io.ByteReader
}

func readUvarint(r byteReader) (uint64, error) {
	x, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, errors.Wrap(asr.ErrMalformedStream, err.Error())
	}
	return x, nil
}

func readVarint(r byteReader) (int64, error) {
	x, err := binary.ReadVarint(r)
	if err != nil {
		return 0, errors.Wrap(asr.ErrMalformedStream, err.Error())
	}
	return x, nil
}

func readString(r byteReader) (string, error) {
	n, err := readUvarint(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", errors.Wrap(asr.ErrMalformedStream, err.Error())
	}
	return string(buf), nil
}

func readFloat64(r byteReader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.Wrap(asr.ErrMalformedStream, err.Error())
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

func readBool(r byteReader) (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, errors.Wrap(asr.ErrMalformedStream, err.Error())
	}
	return b != 0, nil
}

func readTag(r byteReader) (tag, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, errors.Wrap(asr.ErrMalformedStream, err.Error())
	}
	return tag(b), nil
}
