package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/docsync/internal/client/client"
	"github.com/dmitrijs2005/docsync/internal/client/config"
	"github.com/dmitrijs2005/docsync/internal/client/imaging"
	"github.com/dmitrijs2005/docsync/internal/client/service"
	"github.com/dmitrijs2005/docsync/internal/client/services"
	"github.com/dmitrijs2005/docsync/internal/filex"
	"github.com/dmitrijs2005/docsync/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	docService  services.DocumentService
	syncService services.SyncService
	apiClient   client.Client
	repos       *client.Repositories
	deviceID    string
	Mode        Mode
	reader      *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	ctx := context.Background()

	dbPath := c.DatabasePath
	if !filepath.IsAbs(dbPath) {
		dataDir, err := filex.EnsureSubDir("data")
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dataDir, dbPath)
	}

	repos, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := service.NewHTTPClientService(c.EndpointURL)
	if err != nil {
		return nil, err
	}

	ds := services.NewDocumentService(repos.Documents, imaging.NewBase64Compressor())
	ss := services.NewSyncService(repos.Documents, apiClient, logger, c.UploadTimeout)

	return &App{
		config:      c,
		docService:  ds,
		syncService: ss,
		apiClient:   apiClient,
		repos:       repos,
		Mode:        ModeOffline,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.repos.Close()
	defer a.apiClient.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.deviceID != ""
}

// StartOnlineStatusWatcher probes the endpoint on the given interval and
// flips App.Mode between online and offline accordingly. Capture and list
// work in either mode; sync needs the endpoint, so the prompt shows which
// one the user is in.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.apiClient.Ping(ctx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
