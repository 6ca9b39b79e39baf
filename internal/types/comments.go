package types

import "strings"

// FieldSeparator joins the values of a recurring key in the derived
// field mapping.
const FieldSeparator = ", "

// VorbisCommentBlock is the decoded VORBIS_COMMENT block.
//
// Comments is the raw "KEY=VALUE" sequence exactly as stored, order and
// duplicates preserved; it is the source of truth for encoding. The
// derived field mapping (Field, Has) is a read-only convenience view
// rebuilt after every mutation.
type VorbisCommentBlock struct {
	// Vendor is the vendor string of the encoder that wrote the block.
	Vendor string

	// Comments is the raw comment sequence. Mutate it only through
	// Append and Delete so the derived mapping stays consistent.
	Comments []string

	fields map[string]string
}

// NewVorbisCommentBlock builds a comment block and its derived field
// mapping.
func NewVorbisCommentBlock(vendor string, comments []string) *VorbisCommentBlock {
	vc := &VorbisCommentBlock{Vendor: vendor, Comments: comments}
	vc.Reindex()
	return vc
}

// Reindex rebuilds the derived field mapping from the raw sequence.
// Keys are uppercased; a recurring key's values are joined with
// FieldSeparator in first-seen order. Comments without '=' are skipped.
func (vc *VorbisCommentBlock) Reindex() {
	vc.fields = make(map[string]string, len(vc.Comments))
	for _, raw := range vc.Comments {
		key, value, ok := splitComment(raw)
		if !ok {
			continue
		}
		key = strings.ToUpper(key)
		if existing, dup := vc.fields[key]; dup {
			vc.fields[key] = existing + FieldSeparator + value
		} else {
			vc.fields[key] = value
		}
	}
}

// Field returns the derived value for key, case-insensitive. The empty
// string means the key is absent.
func (vc *VorbisCommentBlock) Field(key string) string {
	return vc.fields[strings.ToUpper(key)]
}

// Has reports whether any comment carries key, case-insensitive.
func (vc *VorbisCommentBlock) Has(key string) bool {
	_, ok := vc.fields[strings.ToUpper(key)]
	return ok
}

// Append adds a raw comment to the end of the sequence. Duplicate keys
// are legal and preserved. The caller validates the "KEY=VALUE" shape.
func (vc *VorbisCommentBlock) Append(raw string) {
	vc.Comments = append(vc.Comments, raw)
	vc.Reindex()
}

// Delete removes comments matching target and reports whether anything
// changed. A target containing '=' removes only exact raw matches; a
// bare key removes every comment whose key matches exactly, as stored
// (case-sensitive). Relative order of the survivors is preserved.
func (vc *VorbisCommentBlock) Delete(target string) bool {
	exact := strings.ContainsRune(target, '=')

	kept := vc.Comments[:0]
	for _, raw := range vc.Comments {
		var match bool
		if exact {
			match = raw == target
		} else {
			key, _, ok := splitComment(raw)
			match = ok && key == target
		}
		if !match {
			kept = append(kept, raw)
		}
	}

	if len(kept) == len(vc.Comments) {
		return false
	}
	vc.Comments = kept
	vc.Reindex()
	return true
}

// splitComment splits a raw comment at its first '='.
func splitComment(raw string) (key, value string, ok bool) {
	eq := strings.IndexByte(raw, '=')
	if eq < 0 {
		return "", "", false
	}
	return raw[:eq], raw[eq+1:], true
}
