package storage

import (
	"bpr/internal/config"
	"bpr/internal/domain"
)

// Storage persists and loads the last run's report (e.g. for the failures viewer).
type Storage interface {
	Save(report *domain.Report) error
	Load() (*domain.Report, error)
}

// JSONStorage stores the report in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
