package ui

import "gosweep/internal/domain"

// Viewer displays a sweep's failures in an interactive TUI
type Viewer interface {
	View(results *domain.RunOutput) error
}
