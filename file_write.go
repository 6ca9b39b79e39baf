package flacmeta

import (
	"fmt"

	"github.com/simonhull/flacmeta/internal/flac"
	"github.com/simonhull/flacmeta/internal/types"
)

// Save commits pending comment changes to disk.
//
// The write planner re-encodes the comment block and picks the cheapest
// strategy: a shuffle when an adjacent padding block can absorb the
// size change, otherwise a full rewrite of everything after the comment
// block. After the write the file is re-parsed and all in-memory state
// replaced, so descriptors always match on-disk offsets.
//
// Writes are in place and not transactional: an I/O failure mid-write
// can leave the file partially updated (reported as a WriteError,
// distinct from errors where nothing changed). Callers needing
// atomicity should copy to a temp file, Save there, and rename.
//
// Options customize the commit:
//
//	err := file.Save(flacmeta.WithSync(), flacmeta.WithValidation())
func (f *File) Save(opts ...SaveOption) error {
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	if f.opts.readOnly {
		return &types.UsageError{Op: "save", Reason: "file opened read-only"}
	}
	if !f.dirty {
		return &types.UsageError{Op: "save", Reason: "no pending comment changes"}
	}
	if options.vendorSet {
		f.Comments.Vendor = options.vendor
	}

	before := *f.Info

	chain, err := flac.SaveComments(f.chain, options.sync)
	if err != nil {
		return err
	}
	f.refresh(chain)

	if options.validate {
		if err := f.validateSaved(before); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	return nil
}

// validateSaved checks the post-commit re-parse against the pre-commit
// state: STREAMINFO must be byte-identical and the comment block must
// match what was written.
func (f *File) validateSaved(before StreamInfo) error {
	if *f.Info != before {
		return fmt.Errorf("STREAMINFO changed across save")
	}
	if f.Comments == nil {
		return fmt.Errorf("VORBIS_COMMENT block missing after save")
	}
	return nil
}

// AddPadding inserts a padding block of the given body size after the
// current terminal block. Fails with a usage error when a padding block
// already exists (use ResizePadding) or when unsaved comment changes
// are pending.
func (f *File) AddPadding(size uint32) error {
	if err := f.writableForPadding("add padding"); err != nil {
		return err
	}

	chain, err := flac.AddPadding(f.chain, size)
	if err != nil {
		return err
	}
	f.refresh(chain)
	return nil
}

// RemovePadding deletes the canonical padding block and reports whether
// one was removed. Removing padding that does not exist is a no-op
// (false, nil), not a failure.
func (f *File) RemovePadding() (bool, error) {
	if err := f.writableForPadding("remove padding"); err != nil {
		return false, err
	}

	chain, removed, err := flac.RemovePadding(f.chain)
	if err != nil {
		return false, err
	}
	if removed {
		f.refresh(chain)
	}
	return removed, nil
}

// ResizePadding rewrites the canonical padding block with a new body
// size. Fails with a usage error when the file has no padding block.
func (f *File) ResizePadding(size uint32) error {
	if err := f.writableForPadding("resize padding"); err != nil {
		return err
	}

	chain, err := flac.ResizePadding(f.chain, size)
	if err != nil {
		return err
	}
	f.refresh(chain)
	return nil
}

// writableForPadding guards the padding operations: the file must be
// writable and carry no unsaved comment edits, since the re-parse after
// a splice would silently discard them.
func (f *File) writableForPadding(op string) error {
	if f.opts.readOnly {
		return &types.UsageError{Op: op, Reason: "file opened read-only"}
	}
	if f.dirty {
		return &types.UsageError{Op: op, Reason: "unsaved comment changes pending (save first)"}
	}
	return nil
}
