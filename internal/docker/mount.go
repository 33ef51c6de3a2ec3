package docker

// Mount represents a single bind mount passed to docker run.
type Mount struct {
	Source   string // host path
	Target   string // container path
	ReadOnly bool
}

// Spec renders the mount in Docker CLI format (e.g., "source:target" or
// "source:target:ro").
func (m Mount) Spec() string {
	spec := m.Source + ":" + m.Target
	if m.ReadOnly {
		spec += ":ro"
	}
	return spec
}

// Flags renders mounts as a -v flag sequence, preserving order.
func Flags(mounts []Mount) []string {
	var flags []string
	for _, m := range mounts {
		flags = append(flags, "-v", m.Spec())
	}
	return flags
}
