// Package launch builds and executes the container invocation that runs
// Kamal.
//
// The package has three responsibilities, in order:
//   - select a platform profile (how the SSH agent socket reaches the
//     container, which differs between Docker Desktop and server Linux)
//   - assemble the full docker run argument list from a parsed Config
//   - hand the process over to docker, replacing the wrapper entirely
//
// Build is pure and fully testable; Exec is the single point of no
// return. Anything that fails inside docker or Kamal after Exec surfaces
// directly to the caller's shell, because the wrapper no longer exists as
// a process by then.
package launch
