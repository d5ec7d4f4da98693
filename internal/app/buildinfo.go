package app

// Build metadata injected at link time, e.g.
//
//	go build -ldflags "-X github.com/geekmd-io/geekmd/internal/app.BuildVersion=v1.2.3"
//
// The defaults identify an untagged development build.
var (
	BuildVersion = "dev"
	BuildCommit  = "none"
	BuildDate    = "unknown"
)
