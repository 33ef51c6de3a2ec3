//go:build !unix

package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Exec runs the container runtime as a child process with inherited stdio
// and exits with its exit code. True process-image replacement is not
// available here; the observable behavior (stdio, exit status) is the
// same.
func Exec(inv *Invocation) error {
	bin, err := exec.LookPath(Runtime)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", Runtime, err)
	}

	cmd := exec.Command(bin, inv.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("run %s: %w", bin, err)
	}
	os.Exit(0)
	return nil
}
