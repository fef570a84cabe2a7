package data

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// LoadDeckImage decodes an encounter map's raster. PDF deck plans are
// rasterized via go-fitz (first page); everything else goes through the
// stdlib image decoders. relPath is relative to the store root, as produced
// by Loader.LoadEncounterMap.
func LoadDeckImage(root, relPath string) (image.Image, error) {
	path := filepath.Join(root, relPath)

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDFPage(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", relPath, err)
	}
	return img, nil
}

func loadPDFPage(path string) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()

	if doc.NumPage() < 1 {
		return nil, fmt.Errorf("pdf %s has no pages", path)
	}
	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rasterize %s: %w", path, err)
	}
	return img, nil
}
