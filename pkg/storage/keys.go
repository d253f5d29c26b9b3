package storage

import (
	"time"

	"github.com/google/uuid"
)

const keyTimeLayout = "20060102150405"

// NewImageKey returns a fresh key of the form {uuid}/{YYYYMMDDHHMMSS}.png
func NewImageKey(now time.Time) string {
	return uuid.NewString() + "/" + now.UTC().Format(keyTimeLayout) + ".png"
}
