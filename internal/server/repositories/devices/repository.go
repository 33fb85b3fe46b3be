package devices

import (
	"context"

	"github.com/dmitrijs2005/docsync/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, device *models.Device) (*models.Device, error)
	GetByID(ctx context.Context, id string) (*models.Device, error)
}
