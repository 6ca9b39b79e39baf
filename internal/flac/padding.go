package flac

import (
	"fmt"
	"os"

	"github.com/simonhull/flacmeta/internal/types"
)

// Padding lifecycle operations. Each one splices a padding header and
// zero-filled body into (or out of) the chain, repairs the terminal
// marker so exactly one block stays flagged last, and re-parses the
// file so the caller's state matches disk.

// AddPadding inserts a new padding block of the given body size after
// the current terminal block. Adding padding when one already exists is
// a usage error; ResizePadding must be used instead.
func AddPadding(c *Chain, size uint32) (*Chain, error) {
	if size > maxBlockLen {
		return nil, &types.UsageError{
			Op:     "add padding",
			Reason: fmt.Sprintf("size %d exceeds the 24-bit block limit %d", size, maxBlockLen),
		}
	}
	if _, exists := c.Padding(); exists {
		return nil, &types.UsageError{Op: "add padding", Reason: "padding block already present (use resize)"}
	}

	last := c.Blocks[len(c.Blocks)-1]

	f, err := os.OpenFile(c.Path, os.O_RDWR, 0)
	if err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "open for update", Err: err}
	}
	defer f.Close()

	tail, err := readTail(f, c, last.End())
	if err != nil {
		return nil, err
	}

	// The old terminal block hands its marker to the new padding block.
	if err := setLastFlag(f, c, last, false); err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerLen+int(size)+len(tail))
	out = append(out, encodeHeader(blockHeader{
		Type:   types.BlockPadding,
		Last:   true,
		Length: size,
	})...)
	out = append(out, make([]byte, size)...)
	out = append(out, tail...)

	if _, err := f.WriteAt(out, last.End()); err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "splice padding block", Err: err}
	}
	if err := f.Truncate(last.End() + int64(len(out))); err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "truncate after splice", Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "close", Err: err}
	}

	return ParseFile(c.Path)
}

// RemovePadding deletes the canonical padding block. Removing padding
// that does not exist is a no-op, reported via the bool; the chain is
// returned unchanged in that case.
func RemovePadding(c *Chain) (*Chain, bool, error) {
	pad, exists := c.Padding()
	if !exists {
		return c, false, nil
	}

	f, err := os.OpenFile(c.Path, os.O_RDWR, 0)
	if err != nil {
		return nil, false, &types.WriteError{Path: c.Path, Op: "open for update", Err: err}
	}
	defer f.Close()

	tail, err := readTail(f, c, pad.End())
	if err != nil {
		return nil, false, err
	}

	// If the padding block was terminal, the block before it becomes
	// the last metadata block.
	if pad.Last {
		prev := c.Blocks[c.PaddingIndex-1]
		if err := setLastFlag(f, c, prev, true); err != nil {
			return nil, false, err
		}
	}

	if len(tail) > 0 {
		if _, err := f.WriteAt(tail, pad.HeaderOffset()); err != nil {
			return nil, false, &types.WriteError{Path: c.Path, Op: "remove padding block", Err: err}
		}
	}
	if err := f.Truncate(pad.HeaderOffset() + int64(len(tail))); err != nil {
		return nil, false, &types.WriteError{Path: c.Path, Op: "truncate after removal", Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, false, &types.WriteError{Path: c.Path, Op: "close", Err: err}
	}

	next, err := ParseFile(c.Path)
	if err != nil {
		return nil, false, err
	}
	return next, true, nil
}

// ResizePadding rewrites the canonical padding block with a new body
// size, shifting everything after it. Resizing padding that does not
// exist is a usage error.
func ResizePadding(c *Chain, size uint32) (*Chain, error) {
	if size > maxBlockLen {
		return nil, &types.UsageError{
			Op:     "resize padding",
			Reason: fmt.Sprintf("size %d exceeds the 24-bit block limit %d", size, maxBlockLen),
		}
	}
	pad, exists := c.Padding()
	if !exists {
		return nil, &types.UsageError{Op: "resize padding", Reason: "no padding block present (use add)"}
	}
	if pad.Size == size {
		return c, nil
	}

	f, err := os.OpenFile(c.Path, os.O_RDWR, 0)
	if err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "open for update", Err: err}
	}
	defer f.Close()

	tail, err := readTail(f, c, pad.End())
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerLen+int(size)+len(tail))
	out = append(out, encodeHeader(blockHeader{
		Type:   types.BlockPadding,
		Last:   pad.Last,
		Length: size,
	})...)
	out = append(out, make([]byte, size)...)
	out = append(out, tail...)

	if _, err := f.WriteAt(out, pad.HeaderOffset()); err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "resize padding block", Err: err}
	}
	if err := f.Truncate(pad.HeaderOffset() + int64(len(out))); err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "truncate after resize", Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "close", Err: err}
	}

	return ParseFile(c.Path)
}

// setLastFlag rewrites one block's header with the terminal marker set
// or cleared, leaving type and length untouched.
func setLastFlag(f *os.File, c *Chain, d types.BlockDescriptor, last bool) error {
	hdr := encodeHeader(blockHeader{Type: d.Kind, Last: last, Length: d.Size})
	if _, err := f.WriteAt(hdr, d.HeaderOffset()); err != nil {
		return &types.WriteError{Path: c.Path, Op: "update terminal marker", Err: err}
	}
	return nil
}
