// Package flacmeta reads and selectively rewrites FLAC metadata blocks.
//
// A FLAC file is a fixed "fLaC" marker followed by self-describing
// metadata blocks, terminated by an audio frame stream that flacmeta
// never touches. The package decodes the block chain (STREAMINFO,
// PADDING, APPLICATION, SEEKTABLE, VORBIS_COMMENT, CUESHEET, PICTURE)
// and can mutate the Vorbis comment block in place without corrupting
// the rest of the file.
//
// # Quick Start
//
// Reading metadata:
//
//	file, err := flacmeta.Open("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d Hz, %d channels\n", file.Info.SampleRate, file.Info.Channels)
//	fmt.Println(file.Comment("TITLE"))
//
// Editing tags:
//
//	if err := file.AddComment("GENRE=Ambient"); err != nil {
//		log.Fatal(err)
//	}
//	if err := file.Save(); err != nil {
//		log.Fatal(err)
//	}
//
// # Write Strategy
//
// Save re-encodes the comment block and compares its size change
// against the padding block that follows it. When the padding can
// absorb the change, only the bytes up to the end of the padding block
// are rewritten (a "shuffle"); the rest of the file, which on tagged
// albums often includes megabytes of embedded artwork and all audio
// frames, is left untouched. Otherwise everything after the comment
// block is preserved and shifted in a full rewrite.
//
// Writes are in place and not transactional. An I/O failure mid-write
// can leave the file partially updated; callers that need atomicity
// should copy the file, Save the copy, and rename it over the original.
//
// # Errors
//
// Failures are surfaced as distinct types so callers can tell "nothing
// changed" from "file may now be corrupt": UsageError (bad argument or
// inapplicable operation, file untouched), InvalidMagicError (not a
// FLAC file), DecodeError (malformed block, parse aborted), and
// WriteError (I/O failure mid-mutation).
//
// # Concurrency
//
// A File is not safe for concurrent use. Every operation runs to
// completion synchronously and the design assumes single-reader,
// single-writer use of one path. OpenMany parses independent files in
// parallel.
package flacmeta
