//go:build windows

package media

import (
	"context"
	"os/exec"
	"syscall"
)

// execCommand creates a command that will not flash a console window when
// spawned from the GUI process.
func execCommand(ctx context.Context, name string, arg ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: 0x08000000, // CREATE_NO_WINDOW
	}
	return cmd
}
