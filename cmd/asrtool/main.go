// asrtool is a small demo driver over the ASR core: it encodes, decodes,
// pickles, and validates a translation unit built in-process. It is not
// the compiler driver (there is no Fortran source to read here), only a
// way to exercise the encode/pickle/validate packages from a command
// line.
//
// Usage:
//
//	asrtool <command> [flags]
//
// Commands:
//
//	demo     build a small sample unit and run validate/pickle/encode/decode over it
//	decode   read a module file from stdin and print its pickle
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/soypat/fortran-asr"
	"github.com/soypat/fortran-asr/encode"
	"github.com/soypat/fortran-asr/pickle"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	flag.CommandLine.Parse(os.Args[2:])

	var err error
	switch cmd {
	case "demo":
		err = runDemo()
	case "decode":
		err = runDecode()
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "asrtool %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: asrtool <demo|decode>")
}

// runDemo builds a minimal translation unit (a Program with one integer
// local and one print statement), validates it, prints its pickle, then
// round-trips it through encode/decode and reports whether the decoded
// unit pickles identically.
func runDemo() error {
	u := asr.NewUnit()
	b := asr.NewBuilder(u.Arena)

	prog, err := b.NewProgram(u.Global, "main")
	if err != nil {
		return err
	}
	u.Items = append(u.Items, prog)

	x, err := b.NewVariable(prog.Scope, "x", &asr.Integer{Kind: 4}, asr.IntentLocal, asr.StorageDefault)
	if err != nil {
		return err
	}

	body := []asr.Stmt{
		&asr.Assignment{
			Target: &asr.Var{Sym: x, Typ: x.Type},
			Value:  &asr.ConstantInteger{Val: 1, Typ: x.Type},
		},
		&asr.Print{Items: []asr.Expr{&asr.Var{Sym: x, Typ: x.Type}}},
	}
	if err := b.FinalizeProcedure(prog, body); err != nil {
		return err
	}

	if err := asr.Validate(u); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	fmt.Println(pickle.Pickle(u))

	var buf bytes.Buffer
	if err := encode.Encode(&buf, u); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	decoded, err := encode.Decode(&buf)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if pickle.Equal(u, decoded) {
		fmt.Println("round-trip ok: decode(encode(unit)) pickles identically")
	} else {
		fmt.Println("round-trip MISMATCH")
		fmt.Println(pickle.Pickle(decoded))
	}
	return nil
}

// runDecode reads one encoded unit from stdin and prints its pickle.
func runDecode() error {
	u, err := encode.Decode(os.Stdin)
	if err != nil {
		return err
	}
	fmt.Println(pickle.Pickle(u))
	return nil
}
