package flacmeta

import (
	"context"
	"fmt"
	"runtime"

	"github.com/simonhull/flacmeta/internal/flac"
	"golang.org/x/sync/errgroup"
)

// File is an opened FLAC file with its parsed metadata chain.
//
// File exposes the block descriptor sequence, the decoded typed blocks,
// and the comment mutation API. No file handle is retained between
// operations: a handle is acquired for the duration of a parse, write,
// or picture extraction and released on every exit path. Mutations
// (AddComment, DeleteComment) operate purely in memory until Save is
// called.
//
//	file, err := flacmeta.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	fmt.Println(file.Comments.Field("TITLE"))
type File struct {
	// Path to the FLAC file
	Path string

	// File size in bytes at parse time
	Size int64

	// Blocks is the ordered metadata block descriptor sequence. The
	// first descriptor is always STREAMINFO and exactly one descriptor
	// (the final one) carries the terminal marker.
	Blocks []BlockDescriptor

	// Info is the decoded STREAMINFO block, immutable after parse.
	Info *StreamInfo

	// Comments is the decoded VORBIS_COMMENT block, or nil when the
	// file carries none. Its raw comment sequence is the editable
	// source of truth; use the File mutation methods so pending
	// changes are tracked for Save.
	Comments *VorbisCommentBlock

	// SeekTable is the decoded SEEKTABLE block, or nil.
	SeekTable *SeekTable

	// Application is the decoded APPLICATION block, or nil.
	Application *ApplicationBlock

	// Pictures holds the decoded PICTURE blocks; payloads stay on disk
	// until ExtractPictureData is called.
	Pictures []*PictureBlock

	chain *flac.Chain
	opts  *openOptions
	dirty bool
}

// Open opens a FLAC file and parses its metadata chain.
//
// Only metadata is read; audio frames and picture payloads stay on
// disk. The file handle is released before Open returns.
//
// Options customize behavior:
//
//	file, err := flacmeta.Open("song.flac", flacmeta.WithReadOnly())
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	chain, err := flac.ParseFile(path)
	if err != nil {
		return nil, err
	}

	f := &File{opts: options}
	f.refresh(chain)
	return f, nil
}

// OpenContext opens a file with context support for cancellation.
//
// Parsing itself is a single fast synchronous pass; the context is
// checked before starting.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple FLAC files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any
// file fails to open, an error is returned and the partial results are
// discarded.
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// refresh replaces all in-memory state with a freshly parsed chain.
// Every entity is rebuilt on each parse; nothing survives from the
// previous one.
func (f *File) refresh(chain *flac.Chain) {
	f.chain = chain
	f.Path = chain.Path
	f.Size = chain.Size
	f.Blocks = chain.Blocks
	f.Info = chain.Info
	f.Comments = chain.Comments
	f.SeekTable = chain.SeekTable
	f.Application = chain.Application
	f.Pictures = chain.Pictures
	f.dirty = false
}

// HasPadding reports whether the file carries a padding block. When
// several exist, the first one is the canonical block for the write
// path.
func (f *File) HasPadding() bool {
	_, ok := f.chain.Padding()
	return ok
}

// PaddingSize returns the canonical padding block's body size, or 0
// when the file has none.
func (f *File) PaddingSize() uint32 {
	pad, ok := f.chain.Padding()
	if !ok {
		return 0
	}
	return pad.Size
}

// AudioOffset returns the file offset of the first audio frame byte.
func (f *File) AudioOffset() int64 {
	return f.chain.AudioOffset
}
