// Package vorbis implements the Vorbis comment block codec.
//
// The block layout is a 32-bit little-endian vendor string length, the
// vendor string, a 32-bit little-endian comment count, then per comment
// a 32-bit little-endian length followed by that many bytes of a UTF-8
// "KEY=VALUE" string. Encode is the exact byte inverse of Decode: the
// write planner depends on computing the encoded length before deciding
// between a shuffle and a full rewrite.
package vorbis

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/simonhull/flacmeta/internal/binary"
	"github.com/simonhull/flacmeta/internal/types"
)

// Decode reads a Vorbis comment block body starting at r's current
// offset. size is the declared block body length; Decode fails if the
// declared contents run past it.
func Decode(r *binary.Reader, size uint32) (*types.VorbisCommentBlock, error) {
	end := r.Offset() + int64(size)

	vendorLen, err := binary.ReadValueLE[uint32](r, "vendor string length")
	if err != nil {
		return nil, err
	}
	if r.Offset()+int64(vendorLen) > end {
		return nil, fmt.Errorf("vendor string of %d bytes exceeds block size %d", vendorLen, size)
	}
	vendor, err := r.ReadString(int(vendorLen), "vendor string")
	if err != nil {
		return nil, err
	}

	count, err := binary.ReadValueLE[uint32](r, "comment count")
	if err != nil {
		return nil, err
	}
	// Each comment needs at least its 4-byte length prefix. A count the
	// remaining block bytes cannot hold is rejected here, before it can
	// size an allocation.
	if remaining := end - r.Offset(); int64(count) > remaining/4 {
		return nil, fmt.Errorf("comment count %d exceeds block size %d", count, size)
	}

	comments := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		length, err := binary.ReadValueLE[uint32](r, fmt.Sprintf("comment %d length", i))
		if err != nil {
			return nil, err
		}
		if r.Offset()+int64(length) > end {
			return nil, fmt.Errorf("comment %d of %d bytes exceeds block size %d", i, length, size)
		}
		comment, err := r.ReadString(int(length), fmt.Sprintf("comment %d", i))
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return types.NewVorbisCommentBlock(vendor, comments), nil
}

// Encode serializes the vendor string and raw comment sequence back to
// block body bytes. The result round-trips byte-for-byte through
// Decode.
func Encode(vc *types.VorbisCommentBlock) []byte {
	var buf bytes.Buffer
	sw := binary.NewSafeWriter(&buf)

	binary.WriteLE(sw, uint32(len(vc.Vendor)))
	sw.WriteString(vc.Vendor)
	binary.WriteLE(sw, uint32(len(vc.Comments)))
	for _, c := range vc.Comments {
		binary.WriteLE(sw, uint32(len(c)))
		sw.WriteString(c)
	}

	return buf.Bytes()
}

// EncodedLen returns the body length Encode would produce, without
// building the buffer.
func EncodedLen(vc *types.VorbisCommentBlock) uint32 {
	n := 4 + len(vc.Vendor) + 4
	for _, c := range vc.Comments {
		n += 4 + len(c)
	}
	return uint32(n)
}

// ValidateComment checks that raw is a usable "KEY=VALUE" comment: it
// must contain '=' with a non-empty key before it.
func ValidateComment(raw string) error {
	eq := strings.IndexByte(raw, '=')
	if eq < 0 {
		return fmt.Errorf("comment %q missing '=' separator", raw)
	}
	if eq == 0 {
		return fmt.Errorf("comment %q has an empty key", raw)
	}
	return nil
}
