package flac

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/flacmeta/internal/types"
)

// Test helpers building synthetic FLAC files byte by byte.

// writeBlockHeader appends a 4-byte block header.
func writeBlockHeader(buf *bytes.Buffer, last bool, typ types.BlockType, length int) {
	b0 := byte(typ)
	if last {
		b0 |= 0x80
	}
	buf.WriteByte(b0)
	buf.WriteByte(byte(length >> 16))
	buf.WriteByte(byte(length >> 8))
	buf.WriteByte(byte(length))
}

// streamInfoBody builds a 34-byte STREAMINFO body:
// 44100 Hz, 2 channels, 16 bits, 44100 total samples.
func streamInfoBody() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint16(4096)) // min block size
	binary.Write(buf, binary.BigEndian, uint16(4096)) // max block size
	buf.Write([]byte{0x00, 0x01, 0x53})               // min frame size 339
	buf.Write([]byte{0x00, 0x23, 0x30})               // max frame size 9008

	// [sample_rate(20)][channels-1(3)][bits-1(5)][total_samples(36)]
	packed := uint64(44100)<<44 | uint64(1)<<41 | uint64(15)<<36 | uint64(44100)
	binary.Write(buf, binary.BigEndian, packed)

	buf.Write(bytes.Repeat([]byte{0xAB}, 16)) // MD5
	return buf.Bytes()
}

// vorbisBody builds a VORBIS_COMMENT body from a vendor string and raw
// comments.
func vorbisBody(vendor string, comments []string) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint32(len(vendor)))
	buf.WriteString(vendor)
	binary.Write(buf, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		binary.Write(buf, binary.LittleEndian, uint32(len(c)))
		buf.WriteString(c)
	}
	return buf.Bytes()
}

// pictureBody builds a PICTURE body around the given payload.
func pictureBody(typeCode uint32, mime, desc string, payload []byte) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, typeCode)
	binary.Write(buf, binary.BigEndian, uint32(len(mime)))
	buf.WriteString(mime)
	binary.Write(buf, binary.BigEndian, uint32(len(desc)))
	buf.WriteString(desc)
	binary.Write(buf, binary.BigEndian, uint32(640))  // width
	binary.Write(buf, binary.BigEndian, uint32(480))  // height
	binary.Write(buf, binary.BigEndian, uint32(24))   // color depth
	binary.Write(buf, binary.BigEndian, uint32(0))    // indexed colors
	binary.Write(buf, binary.BigEndian, uint32(len(payload)))
	buf.Write(payload)
	return buf.Bytes()
}

// seekTableBody builds a SEEKTABLE body from points.
func seekTableBody(points []types.SeekPoint) []byte {
	buf := &bytes.Buffer{}
	for _, p := range points {
		binary.Write(buf, binary.BigEndian, p.SampleNumber)
		binary.Write(buf, binary.BigEndian, p.Offset)
		binary.Write(buf, binary.BigEndian, p.FrameSamples)
	}
	return buf.Bytes()
}

// applicationBody builds an APPLICATION body with the given ID and
// payload.
func applicationBody(id uint32, payload []byte) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, id)
	buf.Write(payload)
	return buf.Bytes()
}

// embeddedFilePayload builds the "ATCH" embedded-file sub-format.
func embeddedFilePayload(desc, mime string, data []byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(len(desc)))
	buf.WriteString(desc)
	buf.WriteByte(byte(len(mime)))
	buf.WriteString(mime)
	buf.Write(data)
	return buf.Bytes()
}

// blockdef pairs a type with its body for buildFLAC.
type blockdef struct {
	typ  types.BlockType
	body []byte
}

// paddingBlock builds a zero-filled padding block of the given size.
func paddingBlock(size int) blockdef {
	return blockdef{types.BlockPadding, make([]byte, size)}
}

// buildFLAC assembles a complete file: magic, the given blocks (the
// final one carries the terminal marker), then audio bytes.
func buildFLAC(blocks []blockdef, audio []byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(Magic)
	for i, b := range blocks {
		writeBlockHeader(buf, i == len(blocks)-1, b.typ, len(b.body))
		buf.Write(b.body)
	}
	buf.Write(audio)
	return buf.Bytes()
}

// writeTempFLAC writes data to a temp file and returns its path.
func writeTempFLAC(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.flac")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// readFileBytes reads the whole file back for byte-level assertions.
func readFileBytes(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
