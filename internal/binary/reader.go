// Package binary provides bounds-checked binary reading and writing
// primitives for the FLAC block codec.
//
// Byte-aligned multi-byte integers are read in either big-endian order
// (block headers, STREAMINFO, PICTURE fields) or little-endian order
// (Vorbis comment lengths). Sub-byte bit-packed fields are handled by
// BitFields in bitfield.go.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Endianness selects the byte order for multi-byte reads.
type Endianness int

const (
	// BigEndian is used by block headers and all structured FLAC fields.
	BigEndian Endianness = iota

	// LittleEndian is used by Vorbis comment length prefixes.
	LittleEndian
)

// SafeReader wraps io.ReaderAt with bounds checking and contextual
// error messages. A short read is always surfaced as an error, never as
// a silently truncated value.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a SafeReader over r.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{r: r, size: size, path: path}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the total size of the underlying source in bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads len(b) bytes at the given offset. what names the field
// being read for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off > sr.size {
		return fmt.Errorf("%s: offset %d out of bounds (file size: %d) while reading %s",
			sr.path, off, sr.size, what)
	}
	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
			sr.path, len(b), off, sr.size, what)
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}
	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}
	return nil
}

// Read reads a value of type T at the given offset with the specified
// byte order. T must be uint8, uint16, uint32, or uint64.
func Read[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string, endian Endianness) (T, error) {
	var zero T

	buf := make([]byte, typeSize(zero))
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}
	return decode[T](buf, endian), nil
}

// ReadBE reads a big-endian value of type T at the given offset.
func ReadBE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return Read[T](sr, off, what, BigEndian)
}

// ReadLE reads a little-endian value of type T at the given offset.
func ReadLE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return Read[T](sr, off, what, LittleEndian)
}

// typeSize returns the encoded width of T in bytes.
func typeSize[T uint8 | uint16 | uint32 | uint64](zero T) int {
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// decode converts buf to a value of type T in the given byte order.
func decode[T uint8 | uint16 | uint32 | uint64](buf []byte, endian Endianness) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(buf[0])
	case uint16:
		if endian == LittleEndian {
			return T(binary.LittleEndian.Uint16(buf))
		}
		return T(binary.BigEndian.Uint16(buf))
	case uint32:
		if endian == LittleEndian {
			return T(binary.LittleEndian.Uint32(buf))
		}
		return T(binary.BigEndian.Uint32(buf))
	default:
		if endian == LittleEndian {
			return T(binary.LittleEndian.Uint64(buf))
		}
		return T(binary.BigEndian.Uint64(buf))
	}
}

// Reader provides sequential reading with automatic offset tracking.
type Reader struct {
	*SafeReader
	offset int64
}

// NewReader creates a Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{SafeReader: sr, offset: offset}
}

// ReadValue reads a big-endian value and advances the offset.
func ReadValue[T uint8 | uint16 | uint32 | uint64](r *Reader, what string) (T, error) {
	return readValue[T](r, what, BigEndian)
}

// ReadValueLE reads a little-endian value and advances the offset.
func ReadValueLE[T uint8 | uint16 | uint32 | uint64](r *Reader, what string) (T, error) {
	return readValue[T](r, what, LittleEndian)
}

func readValue[T uint8 | uint16 | uint32 | uint64](r *Reader, what string, endian Endianness) (T, error) {
	val, err := Read[T](r.SafeReader, r.offset, what, endian)
	if err != nil {
		var zero T
		return zero, err
	}
	var zero T
	r.offset += int64(typeSize(zero))
	return val, nil
}

// ReadString reads a string of the given length and advances the offset.
func (r *Reader) ReadString(length int, what string) (string, error) {
	b, err := r.ReadBytes(length, what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadBytes reads length raw bytes and advances the offset.
func (r *Reader) ReadBytes(length int, what string) ([]byte, error) {
	buf := make([]byte, length)
	if err := r.SafeReader.ReadAt(buf, r.offset, what); err != nil {
		return nil, err
	}
	r.offset += int64(length)
	return buf, nil
}

// Skip advances the offset by n bytes.
func (r *Reader) Skip(n int64) {
	r.offset += n
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ChainReader allows chaining multiple reads with deferred error
// checking. If any read fails, subsequent reads return zero values and
// Error reports the first failure.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a ChainReader over r.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// ReadChained reads a big-endian value with deferred error checking.
func ReadChained[T uint8 | uint16 | uint32 | uint64](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}
	val, err := ReadValue[T](cr.Reader, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}
	return val
}

// ReadChainedLE reads a little-endian value with deferred error checking.
func ReadChainedLE[T uint8 | uint16 | uint32 | uint64](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}
	val, err := ReadValueLE[T](cr.Reader, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}
	return val
}

// String reads a string of the given length, accumulating any error.
func (cr *ChainReader) String(length int, what string) string {
	if cr.err != nil {
		return ""
	}
	val, err := cr.Reader.ReadString(length, what)
	if err != nil {
		cr.err = err
		return ""
	}
	return val
}

// Bytes reads raw bytes of the given length, accumulating any error.
func (cr *ChainReader) Bytes(length int, what string) []byte {
	if cr.err != nil {
		return nil
	}
	val, err := cr.Reader.ReadBytes(length, what)
	if err != nil {
		cr.err = err
		return nil
	}
	return val
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
