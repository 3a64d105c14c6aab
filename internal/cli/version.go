package cli

import (
	goversion "github.com/caarlos0/go-version"
)

const (
	appName        = "syncroexport"
	appDescription = "Export contacts from Syncro RMM to a CSV file"
	appWebsite     = "https://github.com/vk/syncroexport"
)

// Build metadata, set with -ldflags "-X github.com/vk/syncroexport/internal/cli.Version=...".
var (
	Version   = ""
	Commit    = ""
	TreeState = ""
	Date      = ""
	BuiltBy   = ""
)

// BuildInfo describes the running binary.
func BuildInfo() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(appName, appDescription, appWebsite),
		func(i *goversion.Info) {
			if Commit != "" {
				i.GitCommit = Commit
			}
			if Version != "" {
				i.GitVersion = Version
			}
			if TreeState != "" {
				i.GitTreeState = TreeState
			}
			if Date != "" {
				i.BuildDate = Date
			}
			if BuiltBy != "" {
				i.BuiltBy = BuiltBy
			}
		},
	)
}
