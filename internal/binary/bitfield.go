package binary

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// BitFields extracts unsigned integers of arbitrary bit width from a
// contiguous byte buffer, most-significant-bit first, with fields
// spanning byte boundaries as needed.
//
// FLAC packs several block fields this way: the STREAMINFO
// sample-rate/channels/bits/samples group (20+3+5+36 bits) and the
// 1+7+24 bit block header.
type BitFields struct {
	r    *bitio.Reader
	left uint // bits remaining in the buffer
}

// NewBitFields creates a BitFields over buf.
func NewBitFields(buf []byte) *BitFields {
	return &BitFields{
		r:    bitio.NewReader(bytes.NewReader(buf)),
		left: uint(len(buf)) * 8,
	}
}

// Take consumes the next n bits (n <= 64) and returns them as an
// unsigned integer. It fails when fewer bits remain than requested;
// the caller must treat that as a decode failure for the enclosing
// block.
func (bf *BitFields) Take(n uint8) (uint64, error) {
	if uint(n) > bf.left {
		return 0, fmt.Errorf("bit field of %d bits exceeds %d remaining bits", n, bf.left)
	}
	v, err := bf.r.ReadBits(n)
	if err != nil {
		return 0, fmt.Errorf("read %d-bit field: %w", n, err)
	}
	bf.left -= uint(n)
	return v, nil
}

// Bool consumes a single bit as a flag.
func (bf *BitFields) Bool() (bool, error) {
	v, err := bf.Take(1)
	return v == 1, err
}

// PackBits writes a sequence of (value, width) pairs MSB-first into a
// byte slice. The total width must be a multiple of 8.
func PackBits(fields ...BitField) ([]byte, error) {
	var total uint
	for _, f := range fields {
		total += uint(f.Width)
	}
	if total%8 != 0 {
		return nil, fmt.Errorf("bit fields total %d bits; not byte-aligned", total)
	}

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteBits(f.Value, f.Width); err != nil {
			return nil, fmt.Errorf("write %d-bit field: %w", f.Width, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BitField is one (value, width) pair for PackBits.
type BitField struct {
	Value uint64
	Width uint8
}
