package flac

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/flacmeta/internal/types"
	"github.com/simonhull/flacmeta/internal/vorbis"
)

// taggedFile builds a file whose comment block can be grown or shrunk:
// STREAMINFO, VORBIS_COMMENT(TITLE=foo), SEEKTABLE between comment and
// padding so shuffles must move a real middle region, then padding of
// the given size (or none when padding < 0), then audio bytes.
func taggedFile(t *testing.T, padding int) string {
	t.Helper()
	blocks := []blockdef{
		{types.BlockStreamInfo, streamInfoBody()},
		{types.BlockVorbisComment, vorbisBody("test vendor", []string{"TITLE=foo"})},
		{types.BlockSeekTable, seekTableBody([]types.SeekPoint{
			{SampleNumber: 0, Offset: 0, FrameSamples: 4096},
		})},
	}
	if padding >= 0 {
		blocks = append(blocks, paddingBlock(padding))
	}
	return writeTempFLAC(t, buildFLAC(blocks, []byte("audio-data")))
}

func TestPlanCommentUpdate(t *testing.T) {
	chain, err := ParseFile(taggedFile(t, 4096))
	require.NoError(t, err)
	comment, ok := chain.Comment()
	require.True(t, ok)

	tests := []struct {
		name   string
		newLen uint32
		want   WritePlan
	}{
		{"shrink", comment.Size - 5, PlanShuffle},
		{"same size", comment.Size, PlanShuffle},
		{"growth within padding", comment.Size + 14, PlanShuffle},
		{"growth equals padding", comment.Size + 4096, PlanShuffle},
		{"growth exceeds padding", comment.Size + 4097, PlanRewrite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanCommentUpdate(chain, tt.newLen))
		})
	}
}

func TestPlanCommentUpdateNoPadding(t *testing.T) {
	chain, err := ParseFile(taggedFile(t, -1))
	require.NoError(t, err)

	// Even a shrink rewrites: there is no padding block to absorb the
	// slack.
	assert.Equal(t, PlanRewrite, PlanCommentUpdate(chain, 1))
}

func TestPlanCommentUpdatePaddingBeforeComment(t *testing.T) {
	data := buildFLAC([]blockdef{
		{types.BlockStreamInfo, streamInfoBody()},
		paddingBlock(4096),
		{types.BlockVorbisComment, vorbisBody("test vendor", []string{"TITLE=foo"})},
	}, []byte("audio-data"))

	chain, err := ParseFile(writeTempFLAC(t, data))
	require.NoError(t, err)

	// Padding ahead of the comment block cannot absorb its growth.
	assert.Equal(t, PlanRewrite, PlanCommentUpdate(chain, 8192))
}

func TestSaveCommentsShuffle(t *testing.T) {
	path := taggedFile(t, 4096)
	chain, err := ParseFile(path)
	require.NoError(t, err)
	sizeBefore := chain.Size

	// "GENRE=Test" adds 4 length-prefix bytes + 10 comment bytes.
	chain.Comments.Append("GENRE=Test")
	next, err := SaveComments(chain, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"TITLE=foo", "GENRE=Test"}, next.Comments.Comments)
	assert.Equal(t, "test vendor", next.Comments.Vendor)

	// The 14-byte growth came out of the padding block; the file size
	// did not move.
	pad, ok := next.Padding()
	require.True(t, ok)
	assert.Equal(t, uint32(4096-14), pad.Size)
	assert.Equal(t, sizeBefore, next.Size)

	// The middle region and the audio survived the shift.
	require.NotNil(t, next.SeekTable)
	assert.Equal(t, uint16(4096), next.SeekTable.Points[0].FrameSamples)
	data := readFileBytes(t, path)
	assert.Equal(t, []byte("audio-data"), data[next.AudioOffset:])

	// Shifted padding bytes must be re-zeroed.
	body := data[pad.Offset:pad.End()]
	for i, b := range body {
		require.Zero(t, b, "padding byte %d", i)
	}
}

func TestSaveCommentsShuffleExactFit(t *testing.T) {
	// Padding of exactly the growth still shuffles, leaving a
	// zero-length padding block.
	path := taggedFile(t, 14)
	chain, err := ParseFile(path)
	require.NoError(t, err)
	sizeBefore := chain.Size

	chain.Comments.Append("GENRE=Test")
	next, err := SaveComments(chain, false)
	require.NoError(t, err)

	pad, ok := next.Padding()
	require.True(t, ok)
	assert.Equal(t, uint32(0), pad.Size)
	assert.Equal(t, sizeBefore, next.Size)
	assert.Equal(t, "Test", next.Comments.Field("GENRE"))
}

func TestSaveCommentsRewrite(t *testing.T) {
	// 2 bytes of padding cannot absorb 14 bytes of growth.
	path := taggedFile(t, 2)
	chain, err := ParseFile(path)
	require.NoError(t, err)
	sizeBefore := chain.Size

	chain.Comments.Append("GENRE=Test")
	next, err := SaveComments(chain, false)
	require.NoError(t, err)

	// The whole tail shifted; the file grew by exactly the comment
	// block's growth and the padding block kept its size.
	assert.Equal(t, sizeBefore+14, next.Size)
	pad, ok := next.Padding()
	require.True(t, ok)
	assert.Equal(t, uint32(2), pad.Size)

	assert.Equal(t, []string{"TITLE=foo", "GENRE=Test"}, next.Comments.Comments)
	data := readFileBytes(t, path)
	assert.Equal(t, []byte("audio-data"), data[next.AudioOffset:])
}

func TestSaveCommentsShrinkRewrite(t *testing.T) {
	// Deleting the only tag shrinks the block; without padding the file
	// is rewritten and shrinks with it.
	path := taggedFile(t, -1)
	chain, err := ParseFile(path)
	require.NoError(t, err)
	sizeBefore := chain.Size

	require.True(t, chain.Comments.Delete("TITLE"))
	next, err := SaveComments(chain, false)
	require.NoError(t, err)

	// Removing "TITLE=foo" drops 4 + 9 bytes.
	assert.Equal(t, sizeBefore-13, next.Size)
	assert.Empty(t, next.Comments.Comments)
	data := readFileBytes(t, path)
	assert.Equal(t, []byte("audio-data"), data[next.AudioOffset:])
}

func TestSaveCommentsEncodedRoundTrip(t *testing.T) {
	path := taggedFile(t, 4096)
	chain, err := ParseFile(path)
	require.NoError(t, err)

	chain.Comments.Append("ARTIST=bar")
	chain.Comments.Append("ARTIST=baz")
	next, err := SaveComments(chain, true)
	require.NoError(t, err)

	// Raw order and duplicates survive the round trip; the on-disk
	// comment block is exactly what Encode produced.
	assert.Equal(t, []string{"TITLE=foo", "ARTIST=bar", "ARTIST=baz"}, next.Comments.Comments)
	assert.Equal(t, "bar, baz", next.Comments.Field("ARTIST"))

	comment, ok := next.Comment()
	require.True(t, ok)
	data := readFileBytes(t, path)
	assert.Equal(t, vorbis.Encode(next.Comments), data[comment.Offset:comment.End()])
}

func TestSaveCommentsNoCommentBlock(t *testing.T) {
	data := buildFLAC([]blockdef{
		{types.BlockStreamInfo, streamInfoBody()},
	}, []byte("audio-data"))
	chain, err := ParseFile(writeTempFLAC(t, data))
	require.NoError(t, err)

	_, err = SaveComments(chain, false)
	var usageErr *types.UsageError
	require.ErrorAs(t, err, &usageErr)
}

func TestSaveCommentsExceedsHeaderLimit(t *testing.T) {
	path := taggedFile(t, 64)
	chain, err := ParseFile(path)
	require.NoError(t, err)
	before := readFileBytes(t, path)

	// A single tag pushing the body past 2^24-1 bytes cannot be
	// described by the header length field.
	chain.Comments.Append("DATA=" + strings.Repeat("x", 0x1000000))
	_, err = SaveComments(chain, false)

	var usageErr *types.UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Contains(t, usageErr.Reason, "24-bit block limit")
	assert.Equal(t, before, readFileBytes(t, path))
}

func TestSaveCommentsStreamInfoUntouched(t *testing.T) {
	for _, padding := range []int{4096, 0} {
		chain, err := ParseFile(taggedFile(t, padding))
		require.NoError(t, err)
		before := *chain.Info

		chain.Comments.Append("GENRE=Test")
		next, err := SaveComments(chain, false)
		require.NoError(t, err)
		assert.Equal(t, before, *next.Info, "padding %d", padding)
	}
}

func TestWritePlanString(t *testing.T) {
	assert.Equal(t, "shuffle", PlanShuffle.String())
	assert.Equal(t, "rewrite", PlanRewrite.String())
}
