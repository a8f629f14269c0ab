//go:build !windows

package media

import (
	"context"
	"os/exec"
)

func execCommand(ctx context.Context, name string, arg ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, arg...)
	return cmd
}
