package pydeps

import (
	"context"
	"fmt"
	"os/exec"
)

// ExecChecker implements domain.DependencyChecker by asking a Python
// interpreter to import each package. The engine only sees the resulting
// name -> importable map.
type ExecChecker struct {
	interpreter string
}

// New creates a checker using the given interpreter; empty means "python".
func New(interpreter string) *ExecChecker {
	if interpreter == "" {
		interpreter = "python"
	}
	return &ExecChecker{interpreter: interpreter}
}

// Check runs one import per package name. Any interpreter failure, missing
// binary included, marks the package as not importable.
func (c *ExecChecker) Check(ctx context.Context, names []string) map[string]bool {
	result := make(map[string]bool, len(names))
	for _, name := range names {
		cmd := exec.CommandContext(ctx, c.interpreter, "-c", fmt.Sprintf("import %s", name))
		result[name] = cmd.Run() == nil
	}
	return result
}
