package flacmeta

// SaveOption configures behavior when committing changes to disk.
//
//	err := file.Save(
//	    flacmeta.WithSync(),
//	    flacmeta.WithValidation(),
//	)
type SaveOption func(*saveOptions)

// saveOptions holds configuration for Save.
type saveOptions struct {
	sync      bool   // fsync before close
	validate  bool   // re-check state after commit
	vendor    string // replacement vendor string
	vendorSet bool
}

// defaultSaveOptions returns the default configuration.
func defaultSaveOptions() *saveOptions {
	return &saveOptions{}
}

// WithSync fsyncs the file before closing it, ensuring the mutation has
// reached stable storage when Save returns.
func WithSync() SaveOption {
	return func(o *saveOptions) {
		o.sync = true
	}
}

// WithValidation re-checks the file after commit: the re-parsed
// STREAMINFO must be identical to the pre-commit one and the comment
// block must still be present.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithVendor replaces the vendor string when the comment block is
// re-encoded. By default the original vendor string is preserved
// byte-for-byte.
func WithVendor(vendor string) SaveOption {
	return func(o *saveOptions) {
		o.vendor = vendor
		o.vendorSet = true
	}
}
