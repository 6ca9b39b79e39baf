// Package types defines the shared FLAC metadata data model: block
// types and descriptors, the decoded per-block structures, and the
// error categories the public API re-exports.
package types

import "fmt"

// BlockType identifies a FLAC metadata block. The format defines seven
// types; the set is closed, so any other value in a block header is a
// stream error rather than something to skip over.
type BlockType uint8

const (
	BlockStreamInfo    BlockType = 0
	BlockPadding       BlockType = 1
	BlockApplication   BlockType = 2
	BlockSeekTable     BlockType = 3
	BlockVorbisComment BlockType = 4
	BlockCueSheet      BlockType = 5
	BlockPicture       BlockType = 6
)

// Valid reports whether t is one of the seven defined block types.
func (t BlockType) Valid() bool {
	return t <= BlockPicture
}

// String returns the format's name for the block type.
func (t BlockType) String() string {
	switch t {
	case BlockStreamInfo:
		return "STREAMINFO"
	case BlockPadding:
		return "PADDING"
	case BlockApplication:
		return "APPLICATION"
	case BlockSeekTable:
		return "SEEKTABLE"
	case BlockVorbisComment:
		return "VORBIS_COMMENT"
	case BlockCueSheet:
		return "CUESHEET"
	case BlockPicture:
		return "PICTURE"
	}
	return fmt.Sprintf("INVALID(%d)", uint8(t))
}

// BlockDescriptor records one metadata block's position in the file.
// Offset is the file offset of the block body, just past the 4-byte
// header.
type BlockDescriptor struct {
	Kind   BlockType
	Last   bool
	Offset int64
	Size   uint32
}

// HeaderOffset returns the file offset of the block's 4-byte header.
func (d BlockDescriptor) HeaderOffset() int64 {
	return d.Offset - 4
}

// End returns the file offset just past the block body.
func (d BlockDescriptor) End() int64 {
	return d.Offset + int64(d.Size)
}

// StreamInfo is the decoded STREAMINFO block: the stream's technical
// parameters. All fields are comparable so a whole-struct equality
// check can verify the block survived a metadata write untouched.
type StreamInfo struct {
	// MinBlockSize and MaxBlockSize are in samples.
	MinBlockSize uint16
	MaxBlockSize uint16

	// MinFrameSize and MaxFrameSize are in bytes; zero means unknown.
	MinFrameSize uint32
	MaxFrameSize uint32

	SampleRate    uint32
	Channels      uint8
	BitsPerSample uint8

	// TotalSamples is the inter-channel sample count; zero means
	// unknown.
	TotalSamples uint64

	// MD5Signature is the lowercase hex MD5 of the unencoded audio.
	MD5Signature string
}

// PlaceholderSample marks an unused seek point.
const PlaceholderSample uint64 = 0xFFFFFFFFFFFFFFFF

// SeekPoint is one SEEKTABLE entry.
type SeekPoint struct {
	SampleNumber uint64
	Offset       uint64
	FrameSamples uint16
}

// IsPlaceholder reports whether the point is an unused placeholder.
func (p SeekPoint) IsPlaceholder() bool {
	return p.SampleNumber == PlaceholderSample
}

// SeekTable is the decoded SEEKTABLE block.
type SeekTable struct {
	Points []SeekPoint
}

// TotalPoints returns the number of seek points, placeholders included.
func (t *SeekTable) TotalPoints() int {
	return len(t.Points)
}

// EmbeddedFileID is the registered application ID ("ATCH") whose
// payload carries the embedded-file sub-format.
const EmbeddedFileID uint32 = 0x41544348

// ApplicationBlock is the decoded APPLICATION block: a registered
// 4-byte ID and an opaque payload. Embedded is non-nil only when the ID
// equals EmbeddedFileID and the payload decoded cleanly.
type ApplicationBlock struct {
	ID       uint32
	Data     []byte
	Embedded *EmbeddedFile
}

// IDString renders the application ID as its 4 ASCII characters when
// printable, hex otherwise.
func (a *ApplicationBlock) IDString() string {
	b := [4]byte{byte(a.ID >> 24), byte(a.ID >> 16), byte(a.ID >> 8), byte(a.ID)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08X", a.ID)
		}
	}
	return string(b[:])
}

// EmbeddedFile is the embedded-file sub-format carried by an
// APPLICATION block with the EmbeddedFileID.
type EmbeddedFile struct {
	Description string
	MIMEType    string
	Data        []byte
}

// MaxPictureType is the highest defined picture type code.
const MaxPictureType uint32 = 20

// pictureTypeNames maps picture type codes to their role names.
var pictureTypeNames = map[uint32]string{
	0:  "Other",
	1:  "32x32 pixels file icon",
	2:  "Other file icon",
	3:  "Cover (front)",
	4:  "Cover (back)",
	5:  "Leaflet page",
	6:  "Media",
	7:  "Lead artist",
	8:  "Artist",
	9:  "Conductor",
	10: "Band",
	11: "Composer",
	12: "Lyricist",
	13: "Recording location",
	14: "During recording",
	15: "During performance",
	16: "Movie screen capture",
	17: "A bright coloured fish",
	18: "Illustration",
	19: "Band logotype",
	20: "Publisher logotype",
}

// PictureTypeName returns the role name for a picture type code, or
// "Unknown" for codes past MaxPictureType.
func PictureTypeName(code uint32) string {
	if name, ok := pictureTypeNames[code]; ok {
		return name
	}
	return "Unknown"
}

// PictureBlock is the decoded PICTURE block. The binary payload is not
// materialized at parse time; DataOffset and DataLength locate it in
// the file for lazy extraction.
type PictureBlock struct {
	Type          uint32
	MIMEType      string
	Description   string
	Width         uint32
	Height        uint32
	ColorDepth    uint32
	IndexedColors uint32

	// DataOffset is the absolute file offset of the image payload.
	DataOffset int64
	DataLength uint32
}

// TypeName returns the role name for the picture's type code.
func (p *PictureBlock) TypeName() string {
	return PictureTypeName(p.Type)
}
