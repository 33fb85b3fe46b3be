package models

import "time"

// Device is a registered field device allowed to upload documents.
// SecretHash is an argon2id PHC string, never the plain secret.
type Device struct {
	ID         string
	SecretHash string
	CreatedAt  time.Time
}
