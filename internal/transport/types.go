// Package transport defines the JSON wire contract between the client's
// sync engine and the sync endpoint.
package transport

// Attachment is one encoded page of a document, ordered by Seq.
type Attachment struct {
	Seq      int    `json:"sequence"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// SyncRequest is the upload payload for one document. TransactionID is the
// client-generated document id and doubles as the idempotency key: submitting
// the same id twice must not create a second remote record.
type SyncRequest struct {
	TransactionID string            `json:"transactionId"`
	Metadata      map[string]string `json:"metadata"`
	Attachments   []Attachment      `json:"attachments"`
}

// SyncResponse is returned with a 2xx status for both fresh inserts and
// idempotent duplicate hits; the two are indistinguishable to the caller
// except for the human-readable Message.
type SyncResponse struct {
	Status         string `json:"status"`
	RemoteRecordID int64  `json:"remoteRecordId"`
	Message        string `json:"message"`
}

// ErrorResponse accompanies any non-2xx status.
type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes returned by the sync endpoint.
const (
	CodeValidation = "validation_failed"
	CodeInternal   = "internal_error"
)

// Device auth request/response bodies.
type RegisterDeviceRequest struct {
	DeviceID string `json:"deviceId"`
	Secret   string `json:"secret"`
}

type LoginRequest struct {
	DeviceID string `json:"deviceId"`
	Secret   string `json:"secret"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
