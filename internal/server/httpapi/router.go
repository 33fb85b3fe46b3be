// Package httpapi exposes the sync endpoint over HTTP using gin.
package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/docsync/internal/logging"
	"github.com/dmitrijs2005/docsync/internal/server/models"
	"github.com/dmitrijs2005/docsync/internal/server/services"
)

// RecordIngester is the slice of RecordService the API needs.
type RecordIngester interface {
	Ingest(ctx context.Context, deviceID, transactionID string,
		metadata map[string]string, attachments []models.Attachment) (*services.IngestResult, error)
}

// DeviceAuthenticator is the slice of DeviceService the API needs.
type DeviceAuthenticator interface {
	Register(ctx context.Context, deviceID string, secret []byte) (*models.Device, error)
	Login(ctx context.Context, deviceID string, secret []byte) (string, error)
}

type API struct {
	logger    logging.Logger
	records   RecordIngester
	devices   DeviceAuthenticator
	jwtSecret []byte
}

func NewAPI(logger logging.Logger, records RecordIngester, devices DeviceAuthenticator, jwtSecret []byte) *API {
	return &API{logger: logger, records: records, devices: devices, jwtSecret: jwtSecret}
}

// NewRouter wires the public routes. Sync requires a bearer token; device
// registration, login and the liveness probe do not.
func (api *API) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/ping", api.Ping)
		v1.POST("/devices/register", api.RegisterDevice)
		v1.POST("/devices/login", api.LoginDevice)
		v1.POST("/sync", api.authRequired(), api.Sync)
	}

	return r
}
