// Package flac implements the FLAC metadata block codec: the chain
// parser, the per-block body decoders, and the write planner that
// mutates the Vorbis comment block in place.
package flac

import (
	"fmt"
	"os"

	"github.com/simonhull/flacmeta/internal/binary"
	"github.com/simonhull/flacmeta/internal/types"
	"github.com/simonhull/flacmeta/internal/vorbis"
)

// Magic is the 4-byte stream marker every FLAC file starts with.
const Magic = "fLaC"

// Chain is the ordered sequence of decoded block descriptors for one
// file, together with the typed block contents. A Chain owns all of its
// descriptors and bodies; everything is rebuilt from scratch on every
// parse and discarded together when parsing restarts.
type Chain struct {
	Path   string
	Size   int64
	Blocks []types.BlockDescriptor

	Info        *types.StreamInfo
	Comments    *types.VorbisCommentBlock
	SeekTable   *types.SeekTable
	Application *types.ApplicationBlock
	Pictures    []*types.PictureBlock

	// CommentIndex and PaddingIndex are indexes into Blocks, or -1.
	// When multiple padding blocks exist the first one is canonical
	// for the write path.
	CommentIndex int
	PaddingIndex int

	// AudioOffset is the file offset of the first audio frame byte,
	// just past the terminal metadata block.
	AudioOffset int64
}

// Padding returns the canonical padding descriptor, or false when the
// file carries none.
func (c *Chain) Padding() (types.BlockDescriptor, bool) {
	if c.PaddingIndex < 0 {
		return types.BlockDescriptor{}, false
	}
	return c.Blocks[c.PaddingIndex], true
}

// Comment returns the Vorbis comment descriptor, or false when the
// file carries no tag block.
func (c *Chain) Comment() (types.BlockDescriptor, bool) {
	if c.CommentIndex < 0 {
		return types.BlockDescriptor{}, false
	}
	return c.Blocks[c.CommentIndex], true
}

// ParseFile opens path read-only, parses the metadata chain, and
// releases the handle before returning, on every exit path.
func ParseFile(path string) (*Chain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return Parse(binary.NewSafeReader(f, stat.Size(), path))
}

// Parse runs the chain state machine over sr:
//
//	Start -> ReadMagic -> (ReadHeader -> Dispatch)* -> Done
//
// The loop stops the first time a header carries the terminal marker;
// no bytes past that block are examined. Any malformed block aborts the
// whole parse; there is no forward-compatible skip path.
func Parse(sr *binary.SafeReader) (*Chain, error) {
	magic := make([]byte, len(Magic))
	if err := sr.ReadAt(magic, 0, "FLAC stream marker"); err != nil {
		return nil, &types.InvalidMagicError{Path: sr.Path()}
	}
	if string(magic) != Magic {
		return nil, &types.InvalidMagicError{Path: sr.Path()}
	}

	chain := &Chain{
		Path:         sr.Path(),
		Size:         sr.Size(),
		CommentIndex: -1,
		PaddingIndex: -1,
	}
	r := binary.NewReader(sr, int64(len(Magic)))

	for {
		headerOffset := r.Offset()
		hdr, err := decodeHeader(r)
		if err != nil {
			return nil, &types.DecodeError{
				Path:   sr.Path(),
				Offset: headerOffset,
				Block:  hdr.Type,
				Reason: err.Error(),
			}
		}

		bodyOffset := r.Offset()
		bodyEnd := bodyOffset + int64(hdr.Length)
		if bodyEnd > sr.Size() {
			return nil, &types.DecodeError{
				Path:   sr.Path(),
				Offset: bodyOffset,
				Block:  hdr.Type,
				Reason: fmt.Sprintf("declared size %d runs past end of file", hdr.Length),
			}
		}
		if len(chain.Blocks) == 0 && hdr.Type != types.BlockStreamInfo {
			return nil, &types.DecodeError{
				Path:   sr.Path(),
				Offset: headerOffset,
				Block:  hdr.Type,
				Reason: "first metadata block is not STREAMINFO",
			}
		}

		if err := chain.dispatch(r, hdr); err != nil {
			return nil, &types.DecodeError{
				Path:   sr.Path(),
				Offset: bodyOffset,
				Block:  hdr.Type,
				Reason: err.Error(),
			}
		}

		// Every decoder must consume exactly the declared size; the
		// chain builder pins the cursor rather than trusting each
		// decoder's arithmetic.
		r.Skip(bodyEnd - r.Offset())

		chain.Blocks = append(chain.Blocks, types.BlockDescriptor{
			Kind:   hdr.Type,
			Last:   hdr.Last,
			Offset: bodyOffset,
			Size:   hdr.Length,
		})

		if hdr.Last {
			break
		}
	}

	chain.AudioOffset = chain.Blocks[len(chain.Blocks)-1].End()
	return chain, nil
}

// dispatch decodes one block body into the chain's typed fields. The
// block-kind switch is exhaustive over the closed set of defined types;
// decodeHeader has already rejected anything else.
func (c *Chain) dispatch(r *binary.Reader, hdr blockHeader) error {
	switch hdr.Type {
	case types.BlockStreamInfo:
		if c.Info != nil {
			return fmt.Errorf("duplicate STREAMINFO block")
		}
		info, err := decodeStreamInfo(r, hdr.Length)
		if err != nil {
			return err
		}
		c.Info = info

	case types.BlockVorbisComment:
		if c.Comments != nil {
			return fmt.Errorf("duplicate VORBIS_COMMENT block")
		}
		vc, err := vorbis.Decode(r, hdr.Length)
		if err != nil {
			return err
		}
		c.Comments = vc
		c.CommentIndex = len(c.Blocks)

	case types.BlockSeekTable:
		if c.SeekTable != nil {
			return fmt.Errorf("duplicate SEEKTABLE block")
		}
		st, err := decodeSeekTable(r, hdr.Length)
		if err != nil {
			return err
		}
		c.SeekTable = st

	case types.BlockApplication:
		if c.Application != nil {
			return fmt.Errorf("duplicate APPLICATION block")
		}
		app, err := decodeApplication(r, hdr.Length)
		if err != nil {
			return err
		}
		c.Application = app

	case types.BlockPicture:
		pic, err := decodePicture(r, hdr.Length)
		if err != nil {
			return err
		}
		c.Pictures = append(c.Pictures, pic)

	case types.BlockPadding:
		// Body is zero fill; the first occurrence is canonical for
		// the write path.
		if c.PaddingIndex < 0 {
			c.PaddingIndex = len(c.Blocks)
		}

	case types.BlockCueSheet:
		// Recognized by header only; contents are deliberately opaque
		// and skipped.
	}

	return nil
}
