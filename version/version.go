// Package version exposes build metadata injected at link time.
package version

//nolint:gochecknoglobals // set via -ldflags
var (
	name    = "mimesis"
	version = "dev"
	commit  = "unknown"
	model   = "mimesis-heuristic-2.1"
)

func Name() string {
	return name
}

func Version() string {
	return version
}

func Commit() string {
	return commit
}

// Model returns the scorer model tag attached to every analysis result.
func Model() string {
	return model
}
