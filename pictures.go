package flacmeta

import (
	"fmt"
	"os"

	"github.com/h2non/filetype"
	"github.com/simonhull/flacmeta/internal/types"
)

// PictureCount returns the number of PICTURE blocks in the file.
func (f *File) PictureCount() int {
	return len(f.Pictures)
}

// Picture returns the i-th picture block, 1-based.
func (f *File) Picture(i int) (*PictureBlock, error) {
	if i < 1 || i > len(f.Pictures) {
		return nil, &types.UsageError{
			Op:     "picture",
			Reason: fmt.Sprintf("index %d out of range (file has %d pictures)", i, len(f.Pictures)),
		}
	}
	return f.Pictures[i-1], nil
}

// ExtractPictureData loads the i-th picture's binary payload (1-based).
//
// Payloads are not materialized during parsing; this re-opens the file,
// reads exactly the payload range, and releases the handle before
// returning.
func (f *File) ExtractPictureData(i int) ([]byte, error) {
	pic, err := f.Picture(i)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	data := make([]byte, pic.DataLength)
	if _, err := file.ReadAt(data, pic.DataOffset); err != nil {
		return nil, fmt.Errorf("read picture %d payload: %w", i, err)
	}
	return data, nil
}

// DetectPictureMIME returns the i-th picture's MIME type (1-based). The
// declared type is used when present; otherwise the payload is sniffed.
func (f *File) DetectPictureMIME(i int) (string, error) {
	pic, err := f.Picture(i)
	if err != nil {
		return "", err
	}
	if pic.MIMEType != "" && pic.MIMEType != "-->" {
		return pic.MIMEType, nil
	}

	data, err := f.ExtractPictureData(i)
	if err != nil {
		return "", err
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return "", fmt.Errorf("sniff picture %d payload: %w", i, err)
	}
	if kind == filetype.Unknown {
		return "application/octet-stream", nil
	}
	return kind.MIME.Value, nil
}
