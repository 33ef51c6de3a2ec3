package launch

import "fmt"

// desktopAgentSocket is where Docker Desktop relocates the host SSH agent
// socket. The real host socket path is not reachable from containers there.
const desktopAgentSocket = "/run/host-services/ssh-auth.sock"

// containerAgentSocket is the fixed in-container agent socket path used on
// platforms that expose the real host socket.
const containerAgentSocket = "/ssh-agent"

// Profile is the host-OS-dependent part of the container invocation.
// Exactly one profile applies per run.
type Profile struct {
	// AgentHostPath is the agent socket path mounted from the host.
	AgentHostPath string

	// AgentContainerPath is where the socket appears inside the container.
	AgentContainerPath string

	// AgentEnv is the SSH_AUTH_SOCK value set inside the container.
	AgentEnv string
}

// ProfileFor selects the launch profile for a host OS. getenv supplies the
// host environment snapshot; only non-darwin profiles consult it.
func ProfileFor(goos string, getenv func(string) string) (Profile, error) {
	if goos == "darwin" {
		return Profile{
			AgentHostPath:      desktopAgentSocket,
			AgentContainerPath: desktopAgentSocket,
			AgentEnv:           desktopAgentSocket,
		}, nil
	}

	sock := getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return Profile{}, fmt.Errorf("SSH_AUTH_SOCK is not set; start an ssh-agent so it can be forwarded into the container")
	}
	return Profile{
		AgentHostPath:      sock,
		AgentContainerPath: containerAgentSocket,
		AgentEnv:           containerAgentSocket,
	}, nil
}
