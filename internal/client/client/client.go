package client

import (
	"context"

	"github.com/dmitrijs2005/docsync/internal/transport"
)

// Client is the remote collaborator consumed by the sync engine. The
// endpoint keys on SyncRequest.TransactionID, so re-submitting the same
// document after an ambiguous failure is safe.
type Client interface {
	Close() error

	// RegisterDevice creates this device on the server.
	RegisterDevice(ctx context.Context, deviceID string, secret []byte) error

	// Login obtains an access token used for subsequent uploads.
	Login(ctx context.Context, deviceID string, secret []byte) error

	// Ping checks endpoint liveness.
	Ping(ctx context.Context) error

	// Upload submits one document. A response is returned both for a fresh
	// insert and for an idempotent duplicate hit; the caller treats the two
	// identically.
	Upload(ctx context.Context, req *transport.SyncRequest) (*transport.SyncResponse, error)
}
