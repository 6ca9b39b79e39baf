package flac

import (
	"fmt"

	"github.com/simonhull/flacmeta/internal/binary"
	"github.com/simonhull/flacmeta/internal/types"
)

// seekPointLen is the encoded size of one seek point: 64-bit sample
// number, 64-bit byte offset, 16-bit frame sample count.
const seekPointLen = 18

// decodeSeekTable decodes the SEEKTABLE block body at r's current
// offset. The body must be an exact multiple of the seek point size.
func decodeSeekTable(r *binary.Reader, size uint32) (*types.SeekTable, error) {
	if size%seekPointLen != 0 {
		return nil, fmt.Errorf("SEEKTABLE size %d is not a multiple of %d", size, seekPointLen)
	}

	count := size / seekPointLen
	points := make([]types.SeekPoint, 0, count)
	for i := uint32(0); i < count; i++ {
		cr := binary.NewChainReader(r)
		sample := binary.ReadChained[uint64](cr, "seek point sample number")
		offset := binary.ReadChained[uint64](cr, "seek point byte offset")
		frameSamples := binary.ReadChained[uint16](cr, "seek point frame samples")
		if err := cr.Error(); err != nil {
			return nil, fmt.Errorf("seek point %d: %w", i, err)
		}
		points = append(points, types.SeekPoint{
			SampleNumber: sample,
			Offset:       offset,
			FrameSamples: frameSamples,
		})
	}

	return &types.SeekTable{Points: points}, nil
}
