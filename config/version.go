package config

// inject version by '-X' flag
// go build -ldflags "-X github.com/watchword/watchword/config.Version=${VERSION}"
var (
	Version   string = "dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
)
