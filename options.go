package flacmeta

// Option configures behavior when opening FLAC files.
//
// Options use the functional options pattern:
//
//	file, err := flacmeta.Open("song.flac", flacmeta.WithReadOnly())
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	readOnly bool // reject all mutation operations
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{}
}

// WithReadOnly rejects every mutation operation on the opened file.
//
// AddComment, DeleteComment, Save, and the padding operations return a
// UsageError. Use this when inspecting files that must not change under
// any circumstances.
func WithReadOnly() Option {
	return func(o *openOptions) {
		o.readOnly = true
	}
}
