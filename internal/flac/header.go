package flac

import (
	"fmt"

	"github.com/simonhull/flacmeta/internal/binary"
	"github.com/simonhull/flacmeta/internal/types"
)

// headerLen is the size of every metadata block header in bytes.
const headerLen = 4

// maxBlockLen is the largest body size the 24-bit header length field
// can carry. Anything larger would be silently truncated mod 2^24 when
// encoded, so writers must reject it up front.
const maxBlockLen = 0xFFFFFF

// blockHeader is the decoded 4-byte header preceding every metadata
// block: a 1-bit terminal marker, a 7-bit block type, and a 24-bit
// big-endian body size.
type blockHeader struct {
	Type   types.BlockType
	Last   bool
	Length uint32
}

// decodeHeader reads and decodes the block header at r's current
// offset. A type value outside the seven defined blocks is an
// unrecoverable stream error: header parsing cannot resynchronize.
func decodeHeader(r *binary.Reader) (blockHeader, error) {
	raw, err := r.ReadBytes(headerLen, "metadata block header")
	if err != nil {
		return blockHeader{}, err
	}

	bf := binary.NewBitFields(raw)
	last, err := bf.Bool()
	if err != nil {
		return blockHeader{}, err
	}
	typ, err := bf.Take(7)
	if err != nil {
		return blockHeader{}, err
	}
	length, err := bf.Take(24)
	if err != nil {
		return blockHeader{}, err
	}

	hdr := blockHeader{
		Type:   types.BlockType(typ),
		Last:   last,
		Length: uint32(length),
	}
	if !hdr.Type.Valid() {
		// Return the header so callers can report the offending type;
		// parsing cannot resynchronize past it.
		return hdr, fmt.Errorf("invalid block type %d", typ)
	}
	return hdr, nil
}

// encodeHeader packs a block header back into its 4-byte wire form.
func encodeHeader(hdr blockHeader) []byte {
	var last uint64
	if hdr.Last {
		last = 1
	}
	buf, err := binary.PackBits(
		binary.BitField{Value: last, Width: 1},
		binary.BitField{Value: uint64(hdr.Type), Width: 7},
		binary.BitField{Value: uint64(hdr.Length), Width: 24},
	)
	if err != nil {
		// 1+7+24 bits is always byte-aligned; PackBits cannot fail here.
		panic(err)
	}
	return buf
}
