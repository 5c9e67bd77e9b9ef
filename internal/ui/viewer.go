package ui

import "bpr/internal/domain"

// Viewer displays run failures in an interactive TUI
type Viewer interface {
	View(report *domain.Report) error
}
