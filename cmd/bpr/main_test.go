package main

import (
	"errors"
	"fmt"
	"testing"

	"bpr/internal/cli/commands"
	"bpr/internal/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "clean run", err: nil, want: exitOK},
		{name: "failed units", err: commands.ErrRunFailed, want: exitRunFail},
		{name: "wrapped failed units", err: fmt.Errorf("run: %w", commands.ErrRunFailed), want: exitRunFail},
		{name: "discovery error", err: &domain.DiscoveryError{Reason: "no feature files found"}, want: exitBadSetup},
		{name: "config error", err: &domain.ConfigError{Field: "workers", Reason: "must be a positive integer"}, want: exitBadSetup},
		{name: "flag parse error", err: errors.New("unknown flag: --frobnicate"), want: exitBadSetup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
