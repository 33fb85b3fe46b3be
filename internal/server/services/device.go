package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docsync/internal/common"
	"github.com/dmitrijs2005/docsync/internal/server/auth"
	"github.com/dmitrijs2005/docsync/internal/server/config"
	"github.com/dmitrijs2005/docsync/internal/server/models"
	"github.com/dmitrijs2005/docsync/internal/server/repositories/repomanager"
)

// DeviceService handles device registration and login.
type DeviceService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewDeviceService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *DeviceService {
	return &DeviceService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a device with an argon2id hash of its secret.
// A taken device ID yields common.ErrorAlreadyExists.
func (s *DeviceService) Register(ctx context.Context, deviceID string, secret []byte) (*models.Device, error) {
	if deviceID == "" || len(secret) == 0 {
		return nil, fmt.Errorf("%w: device id and secret are required", common.ErrValidation)
	}

	hash, err := auth.HashSecret(secret)
	if err != nil {
		return nil, common.ErrorInternal
	}

	device := &models.Device{ID: deviceID, SecretHash: hash}
	repo := s.repomanager.Devices(s.db)
	d, err := repo.Create(ctx, device)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating device: %w", err)
	}
	return d, nil
}

// Login verifies the device secret and mints an access token. An unknown
// device and a wrong secret are indistinguishable to the caller.
func (s *DeviceService) Login(ctx context.Context, deviceID string, secret []byte) (string, error) {
	repo := s.repomanager.Devices(s.db)
	device, err := repo.GetByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	ok, err := auth.VerifySecret(device.SecretHash, secret)
	if err != nil || !ok {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(device.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
