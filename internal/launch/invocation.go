package launch

import (
	"fmt"
	"path"
	"strings"

	"github.com/kamal-tools/kamalw/internal/cli"
	"github.com/kamal-tools/kamalw/internal/docker"
)

// MountRoot is the in-container path where the host working directory is
// mounted.
const MountRoot = "/workdir"

// dockerSocket is mounted into the container so Kamal can drive Docker on
// the host itself. This grants the container host-level container
// management; an accepted trade-off for a deployment tool, not an
// oversight.
const dockerSocket = "/var/run/docker.sock"

// Runtime is the container runtime executable, resolved from PATH.
const Runtime = "docker"

// Invocation is the fully assembled container-runtime argument list. It is
// built once, executed immediately, and never modified.
type Invocation struct {
	Args []string
}

// Build assembles the docker run argument list for a parsed configuration
// and a platform profile. It has no side effects; on error no invocation
// exists.
func Build(cfg *cli.Config, prof Profile) (*Invocation, error) {
	workdir, err := containerWorkdir(cfg.KamalWorkdir)
	if err != nil {
		return nil, err
	}

	mounts := []docker.Mount{
		{Source: cfg.HostWorkdir, Target: MountRoot},
		{Source: prof.AgentHostPath, Target: prof.AgentContainerPath},
		{Source: dockerSocket, Target: dockerSocket},
	}

	args := []string{"run", "--rm", "-it"}
	args = append(args, docker.Flags(mounts)...)
	args = append(args, "-e", "SSH_AUTH_SOCK="+prof.AgentEnv)
	args = append(args, envFlags(cfg.EnvPassthrough)...)
	args = append(args, "-w", workdir, cfg.Image)
	args = append(args, cfg.Route.Args...)

	return &Invocation{Args: args}, nil
}

// containerWorkdir joins the mount root with the kamal workdir subpath.
// Container paths always use forward slashes, hence path over filepath.
func containerWorkdir(sub string) (string, error) {
	if sub == "" {
		return MountRoot, nil
	}
	if strings.HasPrefix(sub, "/") {
		return "", fmt.Errorf("kamal workdir %q must be relative to the working directory", sub)
	}
	return path.Join(MountRoot, sub), nil
}

// envFlags renders pass-through variable names as value-less -e flags;
// docker resolves each name against this process's environment at run
// time, so values never appear on the command line. Order and duplicates
// are preserved as given.
func envFlags(names []string) []string {
	var flags []string
	for _, name := range names {
		flags = append(flags, "-e", name)
	}
	return flags
}
