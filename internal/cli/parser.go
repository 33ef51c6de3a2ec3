// Package cli handles command-line argument parsing and routing.
package cli

import (
	"fmt"
	"strings"
)

// Environment overrides. CLI values take precedence.
const (
	EnvWorkdir      = "KAMALW_WORKDIR"
	EnvKamalWorkdir = "KAMALW_KAMAL_WORKDIR"
	EnvImage        = "KAMALW_IMAGE"
)

// DefaultImage is the Kamal image run when KAMALW_IMAGE is unset.
const DefaultImage = "ghcr.io/basecamp/kamal:latest"

// RouteKind identifies what the first non-option token asked for.
type RouteKind int

const (
	// RouteHelp prints usage and exits successfully. Selected by -h/--help
	// or by an empty argument vector.
	RouteHelp RouteKind = iota
	// RouteVersion prints the wrapper version and exits successfully.
	RouteVersion
	// RouteDoctor runs the environment diagnostic instead of Kamal.
	RouteDoctor
	// RouteDirect is the literal "kamal" keyword: everything after it is
	// forwarded to Kamal verbatim.
	RouteDirect
	// RouteSubcommand is a recognized Kamal subcommand: that token and
	// everything after it are forwarded verbatim.
	RouteSubcommand
)

// Route is the routing decision made for the first non-option token. Once a
// route is determined, the tokens after it are opaque: they are never
// re-parsed as wrapper options.
type Route struct {
	Kind RouteKind

	// Subcommand is the matched Kamal subcommand name for RouteSubcommand.
	Subcommand string

	// Args are the tokens forwarded to Kamal, in original order.
	Args []string
}

// Config is the validated, immutable set of launch parameters. It is
// assembled once per invocation from the argument vector and the Environ
// snapshot; nothing mutates it after Parse returns.
type Config struct {
	// HostWorkdir is the host directory mounted into the container.
	HostWorkdir string

	// KamalWorkdir is the subdirectory of HostWorkdir, relative only, where
	// Kamal runs inside the container. Empty means the mount root itself.
	KamalWorkdir string

	// EnvPassthrough holds names of host environment variables forwarded
	// into the container by reference. Order is command-line order and
	// duplicates are kept.
	EnvPassthrough []string

	// Image is the Kamal image reference to run.
	Image string

	Route Route
}

// Environ is a snapshot of ambient process state, captured once in main and
// passed explicitly. Tests substitute fakes instead of mutating the real
// environment.
type Environ struct {
	Getenv  func(string) string
	Workdir string
}

// kamalSubcommands is the closed list of Kamal subcommand names recognized
// for routing. It must be kept in sync with Kamal's own command surface.
var kamalSubcommands = map[string]struct{}{
	"accessory": {},
	"app":       {},
	"audit":     {},
	"build":     {},
	"config":    {},
	"deploy":    {},
	"details":   {},
	"docs":      {},
	"help":      {},
	"init":      {},
	"lock":      {},
	"proxy":     {},
	"prune":     {},
	"redeploy":  {},
	"registry":  {},
	"remove":    {},
	"rollback":  {},
	"secrets":   {},
	"server":    {},
	"setup":     {},
	"upgrade":   {},
	"version":   {},
}

// UnknownCommandError reports a first non-option token that is neither the
// "kamal" keyword nor a recognized subcommand.
type UnknownCommandError struct {
	Token string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Token)
}

// Parse parses the argument vector (excluding the program name) into a
// Config. Wrapper options may appear in any order before the routing token;
// the first non-option token decides the route and ends option parsing.
// Parse has no side effects: on error, nothing has been executed.
func Parse(argv []string, env Environ) (*Config, error) {
	cfg := &Config{EnvPassthrough: []string{}}

	if len(argv) == 0 {
		cfg.Route = Route{Kind: RouteHelp}
		return applyDefaults(cfg, env), nil
	}

	i := 0
	for i < len(argv) {
		arg := argv[i]

		switch {
		case arg == "-h" || arg == "--help":
			cfg.Route = Route{Kind: RouteHelp}
			return applyDefaults(cfg, env), nil

		case arg == "--version":
			cfg.Route = Route{Kind: RouteVersion}
			return applyDefaults(cfg, env), nil

		case arg == "-W" || arg == "--workdir":
			val, err := optionValue(argv, i, arg)
			if err != nil {
				return nil, err
			}
			cfg.HostWorkdir = val
			i += 2

		case hasJoinedValue(arg, "-W", "--workdir"):
			val, err := joinedValue(arg)
			if err != nil {
				return nil, err
			}
			cfg.HostWorkdir = val
			i++

		case arg == "-w" || arg == "--kamal-workdir":
			val, err := optionValue(argv, i, arg)
			if err != nil {
				return nil, err
			}
			cfg.KamalWorkdir = val
			i += 2

		case hasJoinedValue(arg, "-w", "--kamal-workdir"):
			val, err := joinedValue(arg)
			if err != nil {
				return nil, err
			}
			cfg.KamalWorkdir = val
			i++

		case arg == "-e" || arg == "--env":
			val, err := optionValue(argv, i, arg)
			if err != nil {
				return nil, err
			}
			cfg.EnvPassthrough = append(cfg.EnvPassthrough, val)
			i += 2

		case hasJoinedValue(arg, "-e", "--env"):
			val, err := joinedValue(arg)
			if err != nil {
				return nil, err
			}
			cfg.EnvPassthrough = append(cfg.EnvPassthrough, val)
			i++

		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("invalid option %q", arg)

		default:
			route, err := routeFor(arg, argv[i+1:])
			if err != nil {
				return nil, err
			}
			cfg.Route = route
			return applyDefaults(cfg, env), nil
		}
	}

	return nil, fmt.Errorf("missing command: expected %q or a kamal subcommand", "kamal")
}

// routeFor decides the route for the first non-option token. rest is
// everything after the token, passed through untouched.
func routeFor(token string, rest []string) (Route, error) {
	switch {
	case token == "kamal":
		return Route{Kind: RouteDirect, Args: rest}, nil
	case token == "doctor":
		return Route{Kind: RouteDoctor}, nil
	default:
		if _, ok := kamalSubcommands[token]; ok {
			args := make([]string, 0, len(rest)+1)
			args = append(args, token)
			args = append(args, rest...)
			return Route{Kind: RouteSubcommand, Subcommand: token, Args: args}, nil
		}
		return Route{}, &UnknownCommandError{Token: token}
	}
}

// optionValue returns the separate-token value for the option at argv[i].
// A missing value, or a value that itself looks like an option, is a usage
// error so that one flag never silently swallows another.
func optionValue(argv []string, i int, opt string) (string, error) {
	if i+1 >= len(argv) {
		return "", fmt.Errorf("option %s requires a value", opt)
	}
	val := argv[i+1]
	if strings.HasPrefix(val, "-") {
		return "", fmt.Errorf("option %s requires a value, got %q", opt, val)
	}
	return val, nil
}

// hasJoinedValue reports whether arg is the =-joined form of one of the
// given option names.
func hasJoinedValue(arg string, names ...string) bool {
	for _, name := range names {
		if strings.HasPrefix(arg, name+"=") {
			return true
		}
	}
	return false
}

// joinedValue extracts the value from an -X=value or --long=value token.
// An empty value is treated the same as a missing one.
func joinedValue(arg string) (string, error) {
	opt, val, _ := strings.Cut(arg, "=")
	if val == "" {
		return "", fmt.Errorf("option %s requires a value", opt)
	}
	return val, nil
}

// applyDefaults fills unset fields from the environment snapshot.
func applyDefaults(cfg *Config, env Environ) *Config {
	if cfg.HostWorkdir == "" {
		cfg.HostWorkdir = env.Getenv(EnvWorkdir)
	}
	if cfg.HostWorkdir == "" {
		cfg.HostWorkdir = env.Workdir
	}
	if cfg.KamalWorkdir == "" {
		cfg.KamalWorkdir = env.Getenv(EnvKamalWorkdir)
	}
	cfg.Image = env.Getenv(EnvImage)
	if cfg.Image == "" {
		cfg.Image = DefaultImage
	}
	return cfg
}
