package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/docsync/internal/client/models"
)

func formatDocument(doc models.Document) string {
	name := doc.Metadata["name"]
	created := time.UnixMilli(doc.CreatedAt).Format(time.RFC3339)
	return fmt.Sprintf("%s  %-10s  %s  %s", doc.Id, doc.SyncStatus, created, name)
}

// List prints documents newest-first, one window at a time. Pressing Enter
// advances to the next window; "q" stops.
func (a *App) List(ctx context.Context) error {
	size := a.config.PageSize
	for page := 1; ; page++ {
		docs, total, err := a.docService.List(ctx, page, size)
		if err != nil {
			log.Println(err.Error())
			return err
		}

		for _, doc := range docs {
			fmt.Println(formatDocument(doc))
		}

		shown := (page-1)*size + len(docs)
		fmt.Printf("-- %d of %d --\n", shown, total)
		if shown >= total {
			return nil
		}

		answer, err := getSimpleText(a.reader, "Press Enter for next page, q to stop", os.Stdout)
		if err != nil || answer == "q" {
			return nil
		}
	}
}

// Show prints a single document's metadata and page inventory.
func (a *App) Show(ctx context.Context) error {
	docID, err := getSimpleText(a.reader, "Enter document ID", os.Stdout)
	if err != nil {
		return err
	}

	pages, err := a.docService.Pages(ctx, docID)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Document %s, %d page(s):\n", docID, len(pages))
	for _, p := range pages {
		size := base64.StdEncoding.DecodedLen(len(p.Data))
		fmt.Printf("  %3d  %-12s  %d bytes\n", p.Seq, p.MimeType, size)
	}
	return nil
}

// Status prints how many documents still wait for upload and how many
// failed on the last attempt.
func (a *App) Status(ctx context.Context) error {
	pending, err := a.docService.PendingCount(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	failed, err := a.docService.FailedCount(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("pending: %d, failed: %d\n", pending, failed)
	return nil
}

// Wipe destroys the local store after an explicit confirmation.
func (a *App) Wipe(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This deletes ALL local documents. Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Println("Cancelled")
		return nil
	}

	if err := a.docService.Wipe(ctx); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("Local store wiped")
	return nil
}
