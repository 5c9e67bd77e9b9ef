package cli

import (
	"time"

	"bpr/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	Workers   int
	Timeout   time.Duration
	BehaveBin string
	Tags      []string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:   f.Workers,
		Timeout:   f.Timeout,
		BehaveBin: f.BehaveBin,
		Tags:      f.Tags,
	}
}
