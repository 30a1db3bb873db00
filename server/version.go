package server

//go:generate go run ../cmd/gen-version -o version_git.go

// gitVersion is set by the generated version_git.go in release builds.
var gitVersion = "unknown"

// Version returns the git description of the source this binary was built from.
func Version() string {
	return gitVersion
}
