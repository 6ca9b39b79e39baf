package flac

import (
	"fmt"
	"os"

	"github.com/simonhull/flacmeta/internal/types"
	"github.com/simonhull/flacmeta/internal/vorbis"
)

// WritePlan records which strategy the planner selected for a comment
// block update.
type WritePlan int

const (
	// PlanShuffle resizes the comment block in place by consuming or
	// yielding space from the padding block that follows it. Nothing
	// past the padding block is touched.
	PlanShuffle WritePlan = iota

	// PlanRewrite preserves everything after the old comment block and
	// rewrites the file from the comment header onward. The file grows
	// or shrinks accordingly.
	PlanRewrite
)

// String implements fmt.Stringer for WritePlan.
func (p WritePlan) String() string {
	if p == PlanShuffle {
		return "shuffle"
	}
	return "rewrite"
}

// PlanCommentUpdate decides between a shuffle and a full rewrite for
// replacing the comment block with a body of newLen bytes.
//
// A shuffle is possible only when a padding block exists after the
// comment block and its declared size can absorb the growth
// (newLen - oldLen). The boundary case growth == padding size shuffles
// and leaves a zero-length padding block, which is still structurally
// valid.
func PlanCommentUpdate(c *Chain, newLen uint32) WritePlan {
	comment, ok := c.Comment()
	if !ok {
		return PlanRewrite
	}
	pad, ok := c.Padding()
	if !ok || pad.Offset < comment.Offset {
		return PlanRewrite
	}
	growth := int64(newLen) - int64(comment.Size)
	if growth > int64(pad.Size) {
		return PlanRewrite
	}
	return PlanShuffle
}

// SaveComments writes the chain's current comment block state back to
// the file using the cheapest viable strategy, then re-parses the file
// so in-memory offsets match on-disk reality. The returned chain
// replaces the one passed in; sync controls whether the file is fsynced
// before close.
//
// Writes are sequential and in place. A failure mid-write leaves the
// file with whatever bytes were flushed; the returned WriteError tells
// the caller the file may be inconsistent.
func SaveComments(c *Chain, sync bool) (*Chain, error) {
	comment, ok := c.Comment()
	if !ok {
		return nil, &types.UsageError{Op: "save", Reason: "file has no VORBIS_COMMENT block to update"}
	}
	if c.Comments == nil || c.Info == nil {
		return nil, &types.UsageError{Op: "save", Reason: "no parsed metadata to write"}
	}

	// Plan and validate on the computed length before building the
	// buffer; a body the 24-bit header field cannot describe must fail
	// before any byte hits disk.
	newLen := vorbis.EncodedLen(c.Comments)
	if newLen > maxBlockLen {
		return nil, &types.UsageError{
			Op:     "save",
			Reason: fmt.Sprintf("comment block of %d bytes exceeds the 24-bit block limit %d", newLen, maxBlockLen),
		}
	}
	body := vorbis.Encode(c.Comments)

	f, err := os.OpenFile(c.Path, os.O_RDWR, 0)
	if err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "open for update", Err: err}
	}
	defer f.Close()

	switch PlanCommentUpdate(c, newLen) {
	case PlanShuffle:
		err = shuffleComments(f, c, comment, body)
	case PlanRewrite:
		err = rewriteComments(f, c, comment, body)
	}
	if err != nil {
		return nil, err
	}

	if sync {
		if err := f.Sync(); err != nil {
			return nil, &types.WriteError{Path: c.Path, Op: "sync", Err: err}
		}
	}
	if err := f.Close(); err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "close", Err: err}
	}

	// Any descriptor computed before the write is stale now; re-parse
	// to resynchronize with on-disk reality.
	return ParseFile(c.Path)
}

// shuffleComments rewrites the byte range from the comment header to
// the end of the padding block: new comment header+body, the preserved
// middle region, then a padding block shrunk (or grown) by exactly the
// comment's size change. The region beyond the padding block is not
// touched, which on files with large trailing picture blocks is the
// dominant cost saving.
func shuffleComments(f *os.File, c *Chain, comment types.BlockDescriptor, body []byte) error {
	pad, _ := c.Padding()
	growth := int64(len(body)) - int64(comment.Size)
	newPadSize := uint32(int64(pad.Size) - growth)

	middle := make([]byte, pad.HeaderOffset()-comment.End())
	if _, err := f.ReadAt(middle, comment.End()); err != nil {
		return &types.WriteError{Path: c.Path, Op: "read middle region", Err: err}
	}

	out := make([]byte, 0, headerLen+len(body)+len(middle)+headerLen+int(newPadSize))
	out = append(out, encodeHeader(blockHeader{
		Type:   types.BlockVorbisComment,
		Last:   comment.Last,
		Length: uint32(len(body)),
	})...)
	out = append(out, body...)
	out = append(out, middle...)
	out = append(out, encodeHeader(blockHeader{
		Type:   types.BlockPadding,
		Last:   pad.Last,
		Length: newPadSize,
	})...)
	// Padding bodies must be zero fill; after a shift the old bytes in
	// this range are arbitrary.
	out = append(out, make([]byte, newPadSize)...)

	if _, err := f.WriteAt(out, comment.HeaderOffset()); err != nil {
		return &types.WriteError{Path: c.Path, Op: "shuffle comment block", Err: err}
	}
	return nil
}

// rewriteComments preserves everything from the end of the old comment
// block to end-of-file, writes the new comment header+body at the old
// header position followed by the preserved tail, and truncates or
// extends the file to fit.
func rewriteComments(f *os.File, c *Chain, comment types.BlockDescriptor, body []byte) error {
	tail, err := readTail(f, c, comment.End())
	if err != nil {
		return err
	}

	out := make([]byte, 0, headerLen+len(body)+len(tail))
	out = append(out, encodeHeader(blockHeader{
		Type:   types.BlockVorbisComment,
		Last:   comment.Last,
		Length: uint32(len(body)),
	})...)
	out = append(out, body...)
	out = append(out, tail...)

	if _, err := f.WriteAt(out, comment.HeaderOffset()); err != nil {
		return &types.WriteError{Path: c.Path, Op: "rewrite comment block", Err: err}
	}
	if err := f.Truncate(comment.HeaderOffset() + int64(len(out))); err != nil {
		return &types.WriteError{Path: c.Path, Op: "truncate after rewrite", Err: err}
	}
	return nil
}

// readTail reads every byte from offset to end-of-file.
func readTail(f *os.File, c *Chain, offset int64) ([]byte, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "stat before rewrite", Err: err}
	}
	if offset > stat.Size() {
		return nil, &types.WriteError{
			Path: c.Path,
			Op:   "read tail",
			Err:  fmt.Errorf("offset %d past end of file %d", offset, stat.Size()),
		}
	}
	tail := make([]byte, stat.Size()-offset)
	if len(tail) == 0 {
		return tail, nil
	}
	if _, err := f.ReadAt(tail, offset); err != nil {
		return nil, &types.WriteError{Path: c.Path, Op: "read tail", Err: err}
	}
	return tail, nil
}
