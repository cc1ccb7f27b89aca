package version

import (
	"bytes"
	"runtime"
	"runtime/debug"
	"strings"
	"text/template"

	"github.com/NilFoundation/suiflow/common/check"
)

// Set via -ldflags "-X github.com/NilFoundation/suiflow/common/version.gitTag=..."
var (
	gitTag    string
	gitCommit string
)

const (
	unknownRevision = "0"
	unknownVersion  = "<unknown>"
)

var versionTmpl = template.Must(template.New("version").Parse(`{{ .Title }}
 Version:	{{ .Version }}
 OS/Arch: 	{{ .OS }}/{{ .Arch }}
 Go:		{{ .Go }}
 Git commit:	{{ .Commit }}`))

func BuildVersionString(appTitle string) string {
	ver := gitTag
	if ver == "" {
		ver = unknownVersion
	}

	parts := strings.SplitN(ver, "-", 2)
	check.PanicIfNot(len(parts) > 0)

	buf := new(bytes.Buffer)
	check.PanicIfErr(versionTmpl.Execute(buf, map[string]string{
		"Title":   appTitle,
		"Version": parts[0],
		"OS":      runtime.GOOS,
		"Arch":    runtime.GOARCH,
		"Go":      runtime.Version(),
		"Commit":  GetGitRevision(),
	}))
	return buf.String()
}

// GetGitRevision prefers the linker-provided commit and falls back to the VCS stamp of the build.
func GetGitRevision() string {
	if gitCommit != "" {
		return gitCommit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return s.Value
			}
		}
	}
	return unknownRevision
}

func UserAgent(app string) string {
	return app + "/" + GetGitRevision()
}
