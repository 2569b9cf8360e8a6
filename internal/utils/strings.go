package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NewTrackingNumber returns a short customer-facing order reference.
func NewTrackingNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRK-" + strings.ToUpper(id[:12])
}
