// Command xisfdump prints the structure of an XISF file: its images,
// geometry, properties, and FITS keywords.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xisf-go/libxisf/xisf"
)

func main() {
	readPixels := flag.Bool("pixels", false, "resolve attachment-backed pixel data for every image")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: xisfdump [-pixels] <file.xisf>")
		os.Exit(2)
	}

	if err := dump(flag.Arg(0), *readPixels); err != nil {
		log.Fatalf("xisfdump: %v", err)
	}
}

func dump(path string, readPixels bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rd, err := xisf.Open(f)
	if err != nil {
		return err
	}
	defer rd.Close()

	fmt.Printf("%s: %d image(s)\n", path, rd.NumImages())

	for _, p := range rd.FileProperties() {
		text, err := p.Value.FormatText()
		if err != nil {
			text = "<unprintable>"
		}

		fmt.Printf("  %s = %s\n", p.ID, text)
	}

	if t := rd.Thumbnail(); t != nil {
		fmt.Printf("  thumbnail: %d byte(s) resident=%v\n", t.Block.UncompressedSize, t.Block.IsResident())
	}

	for i := 0; i < rd.NumImages(); i++ {
		img, err := rd.Image(i, readPixels)
		if err != nil {
			return fmt.Errorf("image[%d]: %w", i, err)
		}

		fmt.Printf("image[%d]: %dx%dx%d %s %s %s resident=%v\n",
			i, img.Geometry.Width, img.Geometry.Height, img.Geometry.Channels,
			img.SampleFormat, img.ColorSpace, img.PixelStorage, img.Pixels.IsResident())

		for _, p := range img.Properties() {
			text, err := p.Value.FormatText()
			if err != nil {
				text = fmt.Sprintf("<%s>", p.Value.Kind())
			}

			fmt.Printf("    %s = %s\n", p.ID, text)
		}

		for _, k := range img.FITSKeywords() {
			fmt.Printf("    FITS %s = %s\n", k.Name, k.Value)
		}
	}

	return nil
}
