package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service represents a catalog entry (haircut, coloring, ...)
type Service struct {
	ID              uuid.UUID
	Name            string
	Price           float64
	DurationMinutes int
	CreatedAt       time.Time
}

// CombineServices returns the comma-joined names and the summed duration of the selection
func CombineServices(services []*Service) (string, int) {
	names := make([]string, 0, len(services))
	total := 0

	for _, s := range services {
		names = append(names, s.Name)
		total += s.DurationMinutes
	}

	return strings.Join(names, ", "), total
}
