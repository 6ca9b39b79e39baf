package main

import (
	"fmt"
	"os"

	"github.com/simonhull/flacmeta"
)

// Debug tool to confirm what we actually read from each metadata block.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: flac-dump <file.flac>")
		os.Exit(1)
	}

	file, err := flacmeta.Open(os.Args[1], flacmeta.WithReadOnly())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s (%d bytes, audio at %d)\n", file.Path, file.Size, file.AudioOffset())
	for _, b := range file.Blocks {
		marker := ""
		if b.Last {
			marker = " [last]"
		}
		fmt.Printf("  %-14s offset=%-8d size=%d%s\n", b.Kind, b.Offset, b.Size, marker)
	}

	info := file.Info
	fmt.Printf("\nSTREAMINFO: %d Hz, %d ch, %d bit, %d samples, md5=%s\n",
		info.SampleRate, info.Channels, info.BitsPerSample, info.TotalSamples, info.MD5Signature)

	if file.Comments != nil {
		fmt.Printf("\nVORBIS_COMMENT (vendor %q):\n", file.Comments.Vendor)
		for _, c := range file.Comments.Comments {
			fmt.Printf("  %s\n", c)
		}
	}

	if file.SeekTable != nil {
		fmt.Printf("\nSEEKTABLE: %d points\n", file.SeekTable.TotalPoints())
	}

	if app := file.Application; app != nil {
		fmt.Printf("\nAPPLICATION: id=%s payload=%d bytes\n", app.IDString(), len(app.Data))
		if app.Embedded != nil {
			fmt.Printf("  embedded file %q (%s, %d bytes)\n",
				app.Embedded.Description, app.Embedded.MIMEType, len(app.Embedded.Data))
		}
	}

	for i := 1; i <= file.PictureCount(); i++ {
		pic, _ := file.Picture(i)
		mime, err := file.DetectPictureMIME(i)
		if err != nil {
			mime = pic.MIMEType
		}
		fmt.Printf("\nPICTURE %d: %s, %s, %dx%d, %d bytes\n",
			i, pic.TypeName(), mime, pic.Width, pic.Height, pic.DataLength)
	}
}
