package flacmeta

import (
	"github.com/simonhull/flacmeta/internal/types"
	"github.com/simonhull/flacmeta/internal/vorbis"
)

// Comment mutation API. All changes are in-memory only until Save is
// called; nothing touches disk before commit.

// HasComment reports whether any comment carries the given key. Lookup
// is case-insensitive, matching the derived field mapping.
func (f *File) HasComment(key string) bool {
	return f.Comments != nil && f.Comments.Has(key)
}

// Comment returns the derived value for a key (case-insensitive).
// Recurring keys yield their values joined in first-seen order. The
// empty string means the key is absent.
func (f *File) Comment(key string) string {
	if f.Comments == nil {
		return ""
	}
	return f.Comments.Field(key)
}

// AddComment appends a raw "KEY=VALUE" comment to the end of the
// sequence. The string must contain '=' with a non-empty key;
// duplicate keys are legal and preserved.
func (f *File) AddComment(raw string) error {
	if f.opts.readOnly {
		return &types.UsageError{Op: "add comment", Reason: "file opened read-only"}
	}
	if f.Comments == nil {
		return &types.UsageError{Op: "add comment", Reason: "file has no VORBIS_COMMENT block"}
	}
	if err := vorbis.ValidateComment(raw); err != nil {
		return &types.UsageError{Op: "add comment", Reason: err.Error()}
	}

	f.Comments.Append(raw)
	f.dirty = true
	return nil
}

// DeleteComment removes comments matching target and reports whether
// anything changed. A target containing '=' removes only exact raw
// matches; a bare key removes every comment whose key matches exactly
// (case-sensitive, as stored). A non-matching target is a no-op and
// returns false with a nil error.
func (f *File) DeleteComment(target string) (bool, error) {
	if f.opts.readOnly {
		return false, &types.UsageError{Op: "delete comment", Reason: "file opened read-only"}
	}
	if f.Comments == nil {
		return false, &types.UsageError{Op: "delete comment", Reason: "file has no VORBIS_COMMENT block"}
	}

	changed := f.Comments.Delete(target)
	if changed {
		f.dirty = true
	}
	return changed, nil
}

// Dirty reports whether unsaved comment changes are pending.
func (f *File) Dirty() bool {
	return f.dirty
}
