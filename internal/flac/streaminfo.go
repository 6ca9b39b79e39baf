package flac

import (
	"encoding/hex"
	"fmt"

	"github.com/simonhull/flacmeta/internal/binary"
	"github.com/simonhull/flacmeta/internal/types"
)

// streamInfoLen is the fixed STREAMINFO body size in bytes.
const streamInfoLen = 34

// decodeStreamInfo decodes the STREAMINFO block body at r's current
// offset. STREAMINFO is the only block guaranteed present; its absence
// or corruption is fatal to the whole parse.
//
// Layout: 16-bit min/max block size (samples), 24-bit min/max frame
// size (bytes), then a packed 64-bit group of 20-bit sample rate,
// 3-bit channels-1, 5-bit bits-per-sample-1, 36-bit total samples,
// then a 16-byte MD5 of the unencoded audio.
func decodeStreamInfo(r *binary.Reader, size uint32) (*types.StreamInfo, error) {
	if size != streamInfoLen {
		return nil, fmt.Errorf("invalid STREAMINFO size %d (expected %d)", size, streamInfoLen)
	}

	cr := binary.NewChainReader(r)
	minBlock := binary.ReadChained[uint16](cr, "min block size")
	maxBlock := binary.ReadChained[uint16](cr, "max block size")
	minFrameBytes := cr.Bytes(3, "min frame size")
	maxFrameBytes := cr.Bytes(3, "max frame size")
	packed := cr.Bytes(8, "packed stream parameters")
	md5 := cr.Bytes(16, "MD5 signature")
	if err := cr.Error(); err != nil {
		return nil, err
	}

	bf := binary.NewBitFields(packed)
	sampleRate, err := bf.Take(20)
	if err != nil {
		return nil, err
	}
	channels, err := bf.Take(3)
	if err != nil {
		return nil, err
	}
	bits, err := bf.Take(5)
	if err != nil {
		return nil, err
	}
	totalSamples, err := bf.Take(36)
	if err != nil {
		return nil, err
	}

	return &types.StreamInfo{
		MinBlockSize:  minBlock,
		MaxBlockSize:  maxBlock,
		MinFrameSize:  uint24(minFrameBytes),
		MaxFrameSize:  uint24(maxFrameBytes),
		SampleRate:    uint32(sampleRate),
		Channels:      uint8(channels) + 1,
		BitsPerSample: uint8(bits) + 1,
		TotalSamples:  totalSamples,
		MD5Signature:  hex.EncodeToString(md5),
	}, nil
}

// uint24 decodes a 3-byte big-endian integer.
func uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}
