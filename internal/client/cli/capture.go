package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/docsync/internal/client/models"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// readImages loads the raw bytes of every named file, in order.
func readImages(paths []string) ([][]byte, error) {
	images := make([][]byte, 0, len(paths))
	for _, p := range paths {
		raw, err := readFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		images = append(images, raw)
	}
	return images, nil
}

// Capture interactively collects metadata and image file paths, then stores
// a new document with pending status. Pages keep the order the paths were
// entered in.
func (a *App) Capture(ctx context.Context) error {
	lines, err := GetMetadata(a.reader, os.Stdout)
	if err != nil {
		return err
	}

	metadata, err := models.MetadataFromStrings(lines)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	paths, err := GetLines(a.reader, "Enter image file paths, one per line", os.Stdout)
	if err != nil {
		return err
	}

	images, err := readImages(paths)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	doc, err := a.docService.Capture(ctx, metadata, images)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Captured document %s with %d page(s)\n", doc.Id, len(images))
	return nil
}

// Edit replaces an existing document's metadata and pages. The document
// goes back to pending so the next sync picks it up.
func (a *App) Edit(ctx context.Context) error {
	docID, err := getSimpleText(a.reader, "Enter document ID", os.Stdout)
	if err != nil {
		return err
	}

	lines, err := GetMetadata(a.reader, os.Stdout)
	if err != nil {
		return err
	}

	metadata, err := models.MetadataFromStrings(lines)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	paths, err := GetLines(a.reader, "Enter image file paths, one per line", os.Stdout)
	if err != nil {
		return err
	}

	images, err := readImages(paths)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if err := a.docService.Edit(ctx, docID, metadata, images); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Updated document %s\n", docID)
	return nil
}
