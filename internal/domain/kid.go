package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kid represents a child who owns custodial accounts
type Kid struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// NewKid builds a kid from raw form input
func NewKid(name string) (*Kid, error) {
	kid := &Kid{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := kid.Validate(); err != nil {
		return nil, err
	}
	return kid, nil
}

// Validate ensures the kid adheres to domain rules
func (k *Kid) Validate() error {
	if strings.TrimSpace(k.Name) == "" {
		return Required("kid name")
	}
	return nil
}
