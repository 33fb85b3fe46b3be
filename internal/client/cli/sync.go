package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/cheggaaa/pb/v3"

	"github.com/dmitrijs2005/docsync/internal/client/services"
)

// runBatch executes one batch operation with a terminal progress bar and
// prints the outcome summary.
func runBatch(ctx context.Context, fn func(ctx context.Context, progress services.ProgressFunc) (services.Summary, error)) error {
	var bar *pb.ProgressBar

	summary, err := fn(ctx, func(done, total int) {
		if bar == nil {
			bar = pb.New(total)
			bar.SetTemplateString(`{{counters . }} {{bar . }} {{percent . }}`)
			bar.Start()
		}
		bar.SetCurrent(int64(done))
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Done: %d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	return nil
}

// Sync uploads every pending document sequentially.
func (a *App) Sync(ctx context.Context) error {
	return runBatch(ctx, a.syncService.SyncPending)
}

// Retry re-attempts every document that failed on a previous sync.
func (a *App) Retry(ctx context.Context) error {
	return runBatch(ctx, a.syncService.RetryFailed)
}
