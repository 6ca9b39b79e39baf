package flacmeta

import (
	"github.com/simonhull/flacmeta/internal/types"
)

// Aliases re-exporting the internal data model as the public API.

// BlockType identifies a FLAC metadata block.
type BlockType = types.BlockType

// Re-export the seven defined block types.
const (
	BlockStreamInfo    = types.BlockStreamInfo
	BlockPadding       = types.BlockPadding
	BlockApplication   = types.BlockApplication
	BlockSeekTable     = types.BlockSeekTable
	BlockVorbisComment = types.BlockVorbisComment
	BlockCueSheet      = types.BlockCueSheet
	BlockPicture       = types.BlockPicture
)

// BlockDescriptor records one block's kind, terminal marker, body
// offset, and body size.
type BlockDescriptor = types.BlockDescriptor

// StreamInfo is the decoded STREAMINFO block.
type StreamInfo = types.StreamInfo

// VorbisCommentBlock is the decoded VORBIS_COMMENT block.
type VorbisCommentBlock = types.VorbisCommentBlock

// SeekTable is the decoded SEEKTABLE block.
type SeekTable = types.SeekTable

// SeekPoint is one SEEKTABLE entry.
type SeekPoint = types.SeekPoint

// ApplicationBlock is the decoded APPLICATION block.
type ApplicationBlock = types.ApplicationBlock

// EmbeddedFile is the embedded-file sub-format carried by an
// APPLICATION block with the reserved "ATCH" ID.
type EmbeddedFile = types.EmbeddedFile

// PictureBlock is the decoded PICTURE block; the image payload is
// loaded lazily via File.ExtractPictureData.
type PictureBlock = types.PictureBlock

// EmbeddedFileID is the registered application ID whose payload is the
// embedded-file sub-format.
const EmbeddedFileID = types.EmbeddedFileID

// PlaceholderSample marks a placeholder seek point.
const PlaceholderSample = types.PlaceholderSample

// PictureTypeName returns the role name for a picture type code.
func PictureTypeName(code uint32) string {
	return types.PictureTypeName(code)
}
