package asr

import "errors"

// Error kinds from §7. These are sentinel values: callers match them
// with errors.Is after unwrapping whatever call-site context
// github.com/pkg/errors.Wrap added. The core never prints a diagnostic
// itself; it only returns one of these, wrapped with enough context for
// the collaborator that does render diagnostics.
var (
	// ErrDuplicateName: insertion collided with an existing name in a scope.
	ErrDuplicateName = errors.New("asr: duplicate name in scope")
	// ErrUnresolvedName: lookup from a non-ExternalSymbol site found nothing.
	ErrUnresolvedName = errors.New("asr: unresolved name")
	// ErrUnresolvedExternal: an ExternalSymbol's declared path locates no symbol.
	ErrUnresolvedExternal = errors.New("asr: unresolved external symbol")
	// ErrTypeMismatch: a constructor was given inconsistent types.
	ErrTypeMismatch = errors.New("asr: type mismatch")
	// ErrInvariantViolation: validate found a §3 invariant breached.
	ErrInvariantViolation = errors.New("asr: invariant violation")
	// ErrSchemaMismatch: the serializer rejected an unknown schema version.
	ErrSchemaMismatch = errors.New("asr: schema mismatch")
	// ErrMalformedStream: the decoder hit an impossible tag, length, or EOF.
	ErrMalformedStream = errors.New("asr: malformed stream")
)
