// Package storage provides blob offload backends for attachment payloads.
package storage

import "context"

// BlobStore writes attachment payloads to an object store. Keys are
// hierarchical, e.g. "records/<transaction>/<seq>".
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// NoopStore is used when no object storage endpoint is configured;
// attachment payloads then live only in Postgres.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return nil
}
