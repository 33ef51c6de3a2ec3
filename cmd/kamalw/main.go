package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/kamal-tools/kamalw/internal/cli"
	"github.com/kamal-tools/kamalw/internal/docker"
	"github.com/kamal-tools/kamalw/internal/launch"
	"github.com/kamal-tools/kamalw/internal/ui"
)

const version = "1.0.0"

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		ui.Fail("Cannot determine working directory: %v", err)
		os.Exit(1)
	}

	// Ambient state is snapshotted here, once; everything downstream works
	// off the explicit Config.
	cfg, err := cli.Parse(os.Args[1:], cli.Environ{Getenv: os.Getenv, Workdir: cwd})
	if err != nil {
		ui.Fail("%v", err)
		ui.Info("Run %s for usage information", ui.Bold("kamalw --help"))
		os.Exit(1)
	}

	switch cfg.Route.Kind {
	case cli.RouteHelp:
		showHelp()
	case cli.RouteVersion:
		fmt.Printf("kamalw %s\n", version)
	case cli.RouteDoctor:
		runDoctor()
	case cli.RouteDirect, cli.RouteSubcommand:
		runKamal(cfg)
	}
}

// runKamal hands the process over to docker. It returns only on failure.
func runKamal(cfg *cli.Config) {
	profile, err := launch.ProfileFor(runtime.GOOS, os.Getenv)
	if err != nil {
		ui.Fail("%v", err)
		os.Exit(1)
	}

	inv, err := launch.Build(cfg, profile)
	if err != nil {
		ui.Fail("%v", err)
		os.Exit(1)
	}

	if err := launch.Exec(inv); err != nil {
		ui.Fail("%v", err)
		os.Exit(1)
	}
}

// runDoctor checks that the environment can actually launch Kamal: docker
// on PATH, a reachable daemon, and an SSH agent for the current platform.
func runDoctor() {
	ui.Header()
	healthy := true

	if _, err := exec.LookPath(launch.Runtime); err != nil {
		ui.Fail("docker not found in PATH")
		healthy = false
	} else {
		ui.Success("docker binary found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := docker.NewClient()
	if err != nil {
		ui.Fail("Cannot create Docker client: %v", err)
		healthy = false
	} else {
		defer client.Close()
		if err := client.Ping(ctx); err != nil {
			ui.Fail("Docker daemon is not reachable: %v", err)
			healthy = false
		} else if serverVersion, err := client.ServerVersion(ctx); err == nil {
			ui.Success("Docker daemon reachable (server %s)", serverVersion)
		} else {
			ui.Success("Docker daemon reachable")
		}
	}

	if _, err := launch.ProfileFor(runtime.GOOS, os.Getenv); err != nil {
		ui.Fail("%v", err)
		healthy = false
	} else {
		ui.Success("SSH agent socket available")
	}

	ui.Footer()

	if !healthy {
		os.Exit(1)
	}
}

func showHelp() {
	help := `kamalw - run Kamal in a container, from any host

USAGE:
    kamalw [OPTIONS] kamal [KAMAL_ARGS...]
    kamalw [OPTIONS] <SUBCOMMAND> [KAMAL_ARGS...]
    kamalw doctor

OPTIONS:
    -W, --workdir PATH        Host directory to mount (default: current directory)
    -w, --kamal-workdir PATH  Subdirectory to run Kamal in (relative to the
                              mounted directory)
    -e, --env NAME            Forward a host environment variable into the
                              container (repeatable)
    -h, --help                Show this help message
    --version                 Show version information

Options also accept joined values: -W=PATH, --workdir=PATH.
Everything after the kamal keyword or a Kamal subcommand is passed to Kamal
unmodified, including tokens that look like kamalw options.

EXAMPLES:
    # Deploy the app in the current directory
    kamalw deploy

    # Run Kamal against a subdirectory of a monorepo
    kamalw -w app deploy

    # Forward registry credentials into the container
    kamalw -e KAMAL_REGISTRY_PASSWORD deploy

    # Arbitrary Kamal invocation, nothing reinterpreted
    kamalw kamal app logs --follow

    # Check that docker and the SSH agent are ready
    kamalw doctor

ENVIRONMENT VARIABLES:
    KAMALW_WORKDIR         Default host directory to mount
    KAMALW_KAMAL_WORKDIR   Default subdirectory to run Kamal in
    KAMALW_IMAGE           Kamal image to run (default: ghcr.io/basecamp/kamal:latest)
    SSH_AUTH_SOCK          SSH agent socket forwarded into the container
                           (required on Linux)
`
	fmt.Print(help)
}
