package flac

import (
	"fmt"

	"github.com/simonhull/flacmeta/internal/binary"
	"github.com/simonhull/flacmeta/internal/types"
)

// decodeApplication decodes an APPLICATION block body: a 4-byte
// registered ID followed by size-4 bytes of opaque payload.
//
// When the ID equals the reserved embedded-file constant ("ATCH") the
// payload is re-decoded as a named, MIME-typed file. Any other ID
// leaves the payload untouched.
func decodeApplication(r *binary.Reader, size uint32) (*types.ApplicationBlock, error) {
	if size < 4 {
		return nil, fmt.Errorf("APPLICATION size %d too small for 4-byte ID", size)
	}

	id, err := binary.ReadValue[uint32](r, "application ID")
	if err != nil {
		return nil, err
	}
	payload, err := r.ReadBytes(int(size-4), "application payload")
	if err != nil {
		return nil, err
	}

	blk := &types.ApplicationBlock{ID: id, Data: payload}
	if id == types.EmbeddedFileID {
		embedded, err := decodeEmbeddedFile(payload)
		if err != nil {
			return nil, fmt.Errorf("embedded file payload: %w", err)
		}
		blk.Embedded = embedded
	}
	return blk, nil
}

// decodeEmbeddedFile decodes the embedded-file sub-format: a 1-byte
// description length, the description, a 1-byte MIME type length, the
// MIME type, and the remaining bytes as raw file data.
func decodeEmbeddedFile(payload []byte) (*types.EmbeddedFile, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("missing description length")
	}
	descLen := int(payload[0])
	pos := 1
	if pos+descLen > len(payload) {
		return nil, fmt.Errorf("description of %d bytes exceeds payload", descLen)
	}
	desc := string(payload[pos : pos+descLen])
	pos += descLen

	if pos >= len(payload) {
		return nil, fmt.Errorf("missing MIME type length")
	}
	mimeLen := int(payload[pos])
	pos++
	if pos+mimeLen > len(payload) {
		return nil, fmt.Errorf("MIME type of %d bytes exceeds payload", mimeLen)
	}
	mime := string(payload[pos : pos+mimeLen])
	pos += mimeLen

	return &types.EmbeddedFile{
		Description: desc,
		MIMEType:    mime,
		Data:        payload[pos:],
	}, nil
}
