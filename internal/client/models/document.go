// Package models defines client-side data models for captured documents.
package models

import (
	"strings"

	"github.com/dmitrijs2005/docsync/internal/common"
)

// SyncStatus is the lifecycle tag of a Document with respect to the
// sync endpoint.
type SyncStatus string

const (
	// StatusPending is the initial status, set at capture time.
	StatusPending SyncStatus = "pending"
	// StatusSynced is terminal: the record has been durably committed
	// remotely and is never re-sent.
	StatusSynced SyncStatus = "synced"
	// StatusFailed marks an upload failure; failed documents are eligible
	// for retry through the same path as pending ones.
	StatusFailed SyncStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s SyncStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSynced, StatusFailed:
		return true
	}
	return false
}

// Document is the metadata header of one captured document. The Id is
// client-generated, stable for the record's lifetime, and serves as the
// idempotency key when syncing.
type Document struct {
	Id string

	// Metadata holds flat fielded attributes (name, date of birth, phone,
	// free-form fields). The storage and sync layers pass it through
	// unchanged.
	Metadata map[string]string

	// CreatedAt is milliseconds since epoch, immutable after capture.
	CreatedAt int64

	SyncStatus SyncStatus
}

// Page is one ordered image belonging to a Document. Seq is 1-based and
// unique within the parent; it defines display and transmission order.
type Page struct {
	Id         string
	DocumentId string
	Seq        int
	MimeType   string

	// Data is the encoded image payload as a transportable string.
	Data string
}

// MetadataFromStrings parses "name=value" lines into a metadata map.
func MetadataFromStrings(lines []string) (map[string]string, error) {
	md := make(map[string]string, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, common.ErrorIncorrectInput
		}
		md[parts[0]] = parts[1]
	}
	return md, nil
}

// requiredMetadataFields must be present and non-empty before a capture
// is persisted.
var requiredMetadataFields = []string{"name"}

// ValidateCapture rejects user-correctable input before any store write:
// missing required metadata fields or an empty page set.
func ValidateCapture(metadata map[string]string, pageCount int) error {
	for _, f := range requiredMetadataFields {
		if strings.TrimSpace(metadata[f]) == "" {
			return common.ErrValidation
		}
	}
	if pageCount == 0 {
		return common.ErrNoPages
	}
	return nil
}
