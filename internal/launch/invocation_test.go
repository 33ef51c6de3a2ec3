package launch

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kamal-tools/kamalw/internal/cli"
)

var linuxProfile = Profile{
	AgentHostPath:      "/tmp/agent.sock",
	AgentContainerPath: "/ssh-agent",
	AgentEnv:           "/ssh-agent",
}

func baseConfig() *cli.Config {
	return &cli.Config{
		HostWorkdir: "/repo",
		Image:       cli.DefaultImage,
		Route: cli.Route{
			Kind: cli.RouteSubcommand,
			Args: []string{"deploy"},
		},
	}
}

// workdirFlag returns the value following the -w flag in the argument list.
func workdirFlag(t *testing.T, args []string) string {
	t.Helper()
	for i, arg := range args {
		if arg == "-w" && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatal("no -w flag in invocation")
	return ""
}

func TestBuildContainerWorkdir(t *testing.T) {
	tests := []struct {
		name         string
		kamalWorkdir string
		want         string
	}{
		{"empty means mount root", "", "/workdir"},
		{"subdirectory", "app", "/workdir/app"},
		{"nested subdirectory", "services/web", "/workdir/services/web"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.KamalWorkdir = tt.kamalWorkdir

			inv, err := Build(cfg, linuxProfile)
			if err != nil {
				t.Fatalf("Build returned error: %v", err)
			}
			if got := workdirFlag(t, inv.Args); got != tt.want {
				t.Errorf("container workdir = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildRejectsAbsoluteKamalWorkdir(t *testing.T) {
	cfg := baseConfig()
	cfg.KamalWorkdir = "/abs/path"

	inv, err := Build(cfg, linuxProfile)
	if err == nil {
		t.Fatal("Build accepted an absolute kamal workdir")
	}
	if inv != nil {
		t.Error("Build returned an invocation alongside the error")
	}
	if !strings.Contains(err.Error(), "must be relative") {
		t.Errorf("error %q does not name the violated contract", err.Error())
	}
}

func TestBuildArgumentOrder(t *testing.T) {
	cfg := &cli.Config{
		HostWorkdir:    "/repo",
		KamalWorkdir:   "app",
		EnvPassthrough: []string{"KAMAL_REGISTRY_PASSWORD"},
		Image:          "ghcr.io/basecamp/kamal:latest",
		Route: cli.Route{
			Kind: cli.RouteSubcommand,
			Args: []string{"deploy", "-d", "staging"},
		},
	}

	inv, err := Build(cfg, linuxProfile)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	want := []string{
		"run", "--rm", "-it",
		"-v", "/repo:/workdir",
		"-v", "/tmp/agent.sock:/ssh-agent",
		"-v", "/var/run/docker.sock:/var/run/docker.sock",
		"-e", "SSH_AUTH_SOCK=/ssh-agent",
		"-e", "KAMAL_REGISTRY_PASSWORD",
		"-w", "/workdir/app",
		"ghcr.io/basecamp/kamal:latest",
		"deploy", "-d", "staging",
	}
	if !reflect.DeepEqual(inv.Args, want) {
		t.Errorf("Args =\n%v\nwant\n%v", inv.Args, want)
	}
}

func TestBuildEnvPassthrough(t *testing.T) {
	t.Run("order and duplicates preserved", func(t *testing.T) {
		cfg := baseConfig()
		cfg.EnvPassthrough = []string{"A", "B", "A"}

		inv, err := Build(cfg, linuxProfile)
		if err != nil {
			t.Fatalf("Build returned error: %v", err)
		}

		var names []string
		for i, arg := range inv.Args {
			// Skip the agent socket assignment; passthrough flags are bare
			// names.
			if arg == "-e" && i+1 < len(inv.Args) && !strings.Contains(inv.Args[i+1], "=") {
				names = append(names, inv.Args[i+1])
			}
		}

		want := []string{"A", "B", "A"}
		if !reflect.DeepEqual(names, want) {
			t.Errorf("passthrough names = %v, want %v", names, want)
		}
	})

	t.Run("empty list renders nothing", func(t *testing.T) {
		cfg := baseConfig()

		inv, err := Build(cfg, linuxProfile)
		if err != nil {
			t.Fatalf("Build returned error: %v", err)
		}

		envFlags := 0
		for _, arg := range inv.Args {
			if arg == "-e" {
				envFlags++
			}
		}
		if envFlags != 1 { // only SSH_AUTH_SOCK
			t.Errorf("found %d -e flags, want 1 (agent socket only)", envFlags)
		}
	})
}

func TestBuildRoutedArgsComeLast(t *testing.T) {
	cfg := baseConfig()
	// Routed tokens that look like wrapper options must survive untouched.
	cfg.Route = cli.Route{Kind: cli.RouteDirect, Args: []string{"-W", "x", "--help"}}

	inv, err := Build(cfg, linuxProfile)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	tail := inv.Args[len(inv.Args)-3:]
	want := []string{"-W", "x", "--help"}
	if !reflect.DeepEqual(tail, want) {
		t.Errorf("tail = %v, want %v", tail, want)
	}
}
