// Package cli provides command-line argument parsing for kamalw.
//
// The wrapper's own option grammar is deliberately small. Each option
// accepts three equivalent forms: a separate-token value (-W path), a
// short joined form (-W=path), and a long joined form (--workdir=path).
//
//   - -W, --workdir: host directory mounted into the container
//   - -w, --kamal-workdir: relative subdirectory Kamal runs in
//   - -e, --env: host environment variable forwarded by name (repeatable)
//   - -h, --help / --version: print and exit
//
// The first non-option token is the routing token. The literal "kamal"
// forwards everything after it to Kamal unmodified; a recognized Kamal
// subcommand forwards itself and everything after it; anything else is an
// error. Tokens after the routing token are never re-parsed, so
// "kamal -W x" sends -W to Kamal, not to the wrapper.
//
// Example usage:
//
//	cfg, err := cli.Parse(os.Args[1:], cli.Environ{Getenv: os.Getenv, Workdir: cwd})
//	if err != nil {
//	    ui.Fail("%v", err)
//	    os.Exit(1)
//	}
package cli
