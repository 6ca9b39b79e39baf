package binary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitFieldsStreamInfoGroup(t *testing.T) {
	// The packed STREAMINFO group: 20-bit sample rate, 3-bit channels-1,
	// 5-bit bits-1, 36-bit total samples.
	packed := uint64(44100)<<44 | uint64(1)<<41 | uint64(15)<<36 | uint64(123456)
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(packed >> (56 - 8*i))
	}

	bf := NewBitFields(buf)
	sampleRate, err := bf.Take(20)
	require.NoError(t, err)
	channels, err := bf.Take(3)
	require.NoError(t, err)
	bits, err := bf.Take(5)
	require.NoError(t, err)
	samples, err := bf.Take(36)
	require.NoError(t, err)

	assert.Equal(t, uint64(44100), sampleRate)
	assert.Equal(t, uint64(1), channels)
	assert.Equal(t, uint64(15), bits)
	assert.Equal(t, uint64(123456), samples)
}

func TestBitFieldsBlockHeader(t *testing.T) {
	bf := NewBitFields([]byte{0x84, 0x00, 0x01, 0x00})

	last, err := bf.Bool()
	require.NoError(t, err)
	assert.True(t, last)

	typ, err := bf.Take(7)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), typ)

	length, err := bf.Take(24)
	require.NoError(t, err)
	assert.Equal(t, uint64(256), length)
}

func TestBitFieldsExhausted(t *testing.T) {
	bf := NewBitFields([]byte{0xFF})

	v, err := bf.Take(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFF), v)

	_, err = bf.Take(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remaining")
}

func TestBitFieldsOverRequest(t *testing.T) {
	bf := NewBitFields([]byte{0x00, 0x00})

	// More bits requested than the buffer holds at all.
	_, err := bf.Take(17)
	require.Error(t, err)
}

func TestPackBitsRoundTrip(t *testing.T) {
	buf, err := PackBits(
		BitField{Value: 1, Width: 1},
		BitField{Value: 4, Width: 7},
		BitField{Value: 256, Width: 24},
	)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x84, 0x00, 0x01, 0x00}, buf)

	bf := NewBitFields(buf)
	last, _ := bf.Bool()
	typ, _ := bf.Take(7)
	length, err := bf.Take(24)
	require.NoError(t, err)
	assert.True(t, last)
	assert.Equal(t, uint64(4), typ)
	assert.Equal(t, uint64(256), length)
}

func TestPackBitsMisaligned(t *testing.T) {
	_, err := PackBits(BitField{Value: 1, Width: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not byte-aligned")
}
