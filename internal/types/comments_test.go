package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldMapping(t *testing.T) {
	vc := NewVorbisCommentBlock("vendor", []string{
		"TITLE=foo",
		"artist=bar",
		"ARTIST=baz",
		"no separator",
	})

	// Keys uppercase; recurring values joined in first-seen order;
	// lookup case-insensitive.
	assert.Equal(t, "foo", vc.Field("TITLE"))
	assert.Equal(t, "foo", vc.Field("title"))
	assert.Equal(t, "bar, baz", vc.Field("Artist"))
	assert.Equal(t, "", vc.Field("ALBUM"))

	assert.True(t, vc.Has("artist"))
	assert.False(t, vc.Has("ALBUM"))

	// Malformed entries are skipped by the mapping but stay in the raw
	// sequence.
	assert.Len(t, vc.Comments, 4)
}

func TestAppend(t *testing.T) {
	vc := NewVorbisCommentBlock("vendor", []string{"TITLE=foo"})
	vc.Append("TITLE=again")

	assert.Equal(t, []string{"TITLE=foo", "TITLE=again"}, vc.Comments)
	assert.Equal(t, "foo, again", vc.Field("TITLE"))
}

func TestDeleteByKey(t *testing.T) {
	vc := NewVorbisCommentBlock("vendor", []string{
		"ARTIST=bar",
		"TITLE=foo",
		"ARTIST=baz",
	})

	assert.True(t, vc.Delete("ARTIST"))
	assert.Equal(t, []string{"TITLE=foo"}, vc.Comments)
	assert.False(t, vc.Has("ARTIST"))
}

func TestDeleteByKeyCaseSensitive(t *testing.T) {
	// Bare-key deletion matches the stored spelling exactly.
	vc := NewVorbisCommentBlock("vendor", []string{"artist=bar"})

	assert.False(t, vc.Delete("ARTIST"))
	assert.True(t, vc.Delete("artist"))
	assert.Empty(t, vc.Comments)
}

func TestDeleteExact(t *testing.T) {
	vc := NewVorbisCommentBlock("vendor", []string{
		"ARTIST=bar",
		"ARTIST=baz",
	})

	// A target with '=' removes only the exact raw comment.
	assert.True(t, vc.Delete("ARTIST=baz"))
	assert.Equal(t, []string{"ARTIST=bar"}, vc.Comments)
	assert.Equal(t, "bar", vc.Field("ARTIST"))
}

func TestDeleteNoMatch(t *testing.T) {
	vc := NewVorbisCommentBlock("vendor", []string{"TITLE=foo"})

	assert.False(t, vc.Delete("ALBUM"))
	assert.False(t, vc.Delete("TITLE=other"))
	assert.Equal(t, []string{"TITLE=foo"}, vc.Comments)
}

func TestBlockTypeString(t *testing.T) {
	assert.Equal(t, "STREAMINFO", BlockStreamInfo.String())
	assert.Equal(t, "VORBIS_COMMENT", BlockVorbisComment.String())
	assert.Equal(t, "PICTURE", BlockPicture.String())
	assert.Equal(t, "INVALID(99)", BlockType(99).String())

	assert.True(t, BlockPicture.Valid())
	assert.False(t, BlockType(7).Valid())
}

func TestBlockDescriptorOffsets(t *testing.T) {
	d := BlockDescriptor{Kind: BlockPadding, Offset: 100, Size: 40}
	assert.Equal(t, int64(96), d.HeaderOffset())
	assert.Equal(t, int64(140), d.End())
}

func TestApplicationIDString(t *testing.T) {
	assert.Equal(t, "ATCH", (&ApplicationBlock{ID: EmbeddedFileID}).IDString())
	assert.Equal(t, "TEST", (&ApplicationBlock{ID: 0x54455354}).IDString())
	assert.Equal(t, "0x00000001", (&ApplicationBlock{ID: 1}).IDString())
}

func TestPictureTypeName(t *testing.T) {
	assert.Equal(t, "Cover (front)", PictureTypeName(3))
	assert.Equal(t, "Publisher logotype", PictureTypeName(MaxPictureType))
	assert.Equal(t, "Unknown", PictureTypeName(MaxPictureType+1))
}

func TestSeekPointPlaceholder(t *testing.T) {
	assert.True(t, SeekPoint{SampleNumber: PlaceholderSample}.IsPlaceholder())
	assert.False(t, SeekPoint{SampleNumber: 0}.IsPlaceholder())
}
