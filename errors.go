package flacmeta

import (
	"github.com/simonhull/flacmeta/internal/types"
)

// UsageError is an alias to types.UsageError: invalid argument shape or
// an operation not applicable to the file's block layout. File state is
// untouched.
type UsageError = types.UsageError

// InvalidMagicError is an alias to types.InvalidMagicError: the file
// does not start with the fLaC stream marker. Distinct from DecodeError
// so "not a FLAC file" is distinguishable from "corrupted FLAC file".
type InvalidMagicError = types.InvalidMagicError

// DecodeError is an alias to types.DecodeError: malformed or truncated
// block data aborted the parse.
type DecodeError = types.DecodeError

// WriteError is an alias to types.WriteError: an I/O failure during a
// shuffle, rewrite, or padding splice. The on-disk state is whatever
// was flushed before the failure.
type WriteError = types.WriteError
