package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseID parses a required identifier field
func ParseID(raw, label string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, Required(label)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q: %w", label, raw, ErrInvalidID)
	}
	return id, nil
}
