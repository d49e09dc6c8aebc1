package ui

import (
	"context"

	"github.com/adriangreen/ideas/internal/executor"
)

// ScriptRunner is the subset of executor.Service the dashboard needs to run
// the inventory and analysis scripts.
type ScriptRunner interface {
	Run(ctx context.Context, inv executor.Invocation) (executor.Command, error)
}
