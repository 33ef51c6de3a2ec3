//go:build unix

package launch

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// Exec replaces the current process with the container runtime. It returns
// only on failure; on success the wrapped tool's exit code becomes this
// process's exit code and no wrapper code runs afterward.
func Exec(inv *Invocation) error {
	bin, err := exec.LookPath(Runtime)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", Runtime, err)
	}

	argv := append([]string{Runtime}, inv.Args...)
	if err := unix.Exec(bin, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", bin, err)
	}
	return nil
}
