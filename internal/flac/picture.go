package flac

import (
	"fmt"
	"io"
	"mime/quotedprintable"
	"strings"

	"github.com/simonhull/flacmeta/internal/binary"
	"github.com/simonhull/flacmeta/internal/types"
)

// decodePicture decodes a PICTURE block body at r's current offset.
//
// All integer fields are 32-bit big-endian per the format definition.
// The binary payload is not materialized: only its absolute file
// offset and length are recorded, so a metadata-only parse does not
// drag multi-megabyte images into memory.
func decodePicture(r *binary.Reader, size uint32) (*types.PictureBlock, error) {
	end := r.Offset() + int64(size)
	cr := binary.NewChainReader(r)

	typeCode := binary.ReadChained[uint32](cr, "picture type")
	if err := cr.Error(); err != nil {
		return nil, err
	}
	if typeCode > types.MaxPictureType {
		return nil, fmt.Errorf("picture type %d out of range (0-%d)", typeCode, types.MaxPictureType)
	}

	mimeLen := binary.ReadChained[uint32](cr, "MIME type length")
	if err := checkInBlock(cr, int64(mimeLen), end, "MIME type"); err != nil {
		return nil, err
	}
	mimeType := cr.String(int(mimeLen), "MIME type")

	descLen := binary.ReadChained[uint32](cr, "description length")
	if err := checkInBlock(cr, int64(descLen), end, "description"); err != nil {
		return nil, err
	}
	desc := cr.String(int(descLen), "description")

	width := binary.ReadChained[uint32](cr, "width")
	height := binary.ReadChained[uint32](cr, "height")
	depth := binary.ReadChained[uint32](cr, "color depth")
	colors := binary.ReadChained[uint32](cr, "indexed color count")
	dataLen := binary.ReadChained[uint32](cr, "picture data length")
	if err := cr.Error(); err != nil {
		return nil, err
	}
	if r.Offset()+int64(dataLen) > end {
		return nil, fmt.Errorf("picture data of %d bytes exceeds block size %d", dataLen, size)
	}

	pic := &types.PictureBlock{
		Type:          typeCode,
		MIMEType:      mimeType,
		Description:   decodeDescription(desc),
		Width:         width,
		Height:        height,
		ColorDepth:    depth,
		IndexedColors: colors,
		DataOffset:    r.Offset(),
		DataLength:    dataLen,
	}
	r.Skip(int64(dataLen))
	return pic, nil
}

// checkInBlock verifies that reading n more bytes stays within the
// block body ending at end.
func checkInBlock(cr *binary.ChainReader, n, end int64, what string) error {
	if err := cr.Error(); err != nil {
		return err
	}
	if cr.Offset()+n > end {
		return fmt.Errorf("%s of %d bytes exceeds block bounds", what, n)
	}
	return nil
}

// decodeDescription applies quoted-printable decoding to the picture
// description. Descriptions that are not valid quoted-printable are
// returned as-is.
func decodeDescription(s string) string {
	if !strings.ContainsRune(s, '=') {
		return s
	}
	decoded, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(s)))
	if err != nil {
		return s
	}
	return string(decoded)
}
