// Package models defines the server-side persistence entities.
package models

import "time"

// Record is one ingested document transaction. TransactionID is the
// client-generated idempotency key: a second upload with the same value maps
// to the same row instead of creating a new one.
type Record struct {
	ID            int64
	TransactionID string
	DeviceID      string
	Metadata      map[string]string
	CreatedAt     time.Time
}

// Attachment is a single page payload belonging to a record. Data holds the
// base64-encoded image; StorageKey is set when the payload was also offloaded
// to the blob store.
type Attachment struct {
	ID         int64
	RecordID   int64
	Seq        int
	MimeType   string
	Data       string
	StorageKey string
}
