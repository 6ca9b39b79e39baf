package binary

import (
	"encoding/binary"
	"io"
)

// SafeWriter wraps io.Writer with position tracking.
type SafeWriter struct {
	w      io.Writer
	offset int64
}

// NewSafeWriter creates a SafeWriter over w.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{w: w}
}

// Offset returns the number of bytes written so far.
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	return err
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// Write writes a value of type T in big-endian byte order.
func Write[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	return sw.WriteBytes(encode(val, BigEndian))
}

// WriteLE writes a value of type T in little-endian byte order.
func WriteLE[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	return sw.WriteBytes(encode(val, LittleEndian))
}

// encode renders val in the given byte order.
func encode[T uint8 | uint16 | uint32 | uint64](val T, endian Endianness) []byte {
	size := typeSize(val)
	v := uint64(val)

	buf := make([]byte, size)
	switch size {
	case 1:
		buf[0] = byte(v)
	case 2:
		if endian == LittleEndian {
			binary.LittleEndian.PutUint16(buf, uint16(v))
		} else {
			binary.BigEndian.PutUint16(buf, uint16(v))
		}
	case 4:
		if endian == LittleEndian {
			binary.LittleEndian.PutUint32(buf, uint32(v))
		} else {
			binary.BigEndian.PutUint32(buf, uint32(v))
		}
	default:
		if endian == LittleEndian {
			binary.LittleEndian.PutUint64(buf, v)
		} else {
			binary.BigEndian.PutUint64(buf, v)
		}
	}
	return buf
}
