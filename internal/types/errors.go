package types

import "fmt"

// The error types below map one-to-one onto the failure categories a
// caller needs to distinguish: usage errors leave the file untouched,
// decode errors abort a parse, and write errors mean the on-disk state
// is whatever bytes were flushed before the failure.

// UsageError reports an invalid argument or an operation that does not
// apply to the file's current block layout. The file is untouched.
type UsageError struct {
	Op     string
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// InvalidMagicError reports that the first 4 bytes of the file are not
// the FLAC stream marker. It is distinct from DecodeError so callers
// can tell "not a FLAC file" apart from "corrupted FLAC file".
type InvalidMagicError struct {
	Path string
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("%s: not a FLAC file (missing fLaC stream marker)", e.Path)
}

// DecodeError reports malformed or truncated block data. The parse is
// aborted and the in-memory state must not be used.
type DecodeError struct {
	Path   string
	Offset int64
	Block  BlockType
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s block at offset %d: %s", e.Path, e.Block, e.Offset, e.Reason)
}

// WriteError reports an I/O failure during a shuffle, rewrite, or
// padding splice. Writes are not transactional: the file may be left
// partially updated (callers needing atomicity must wrap the mutation
// in their own write-to-temp-then-rename discipline).
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
