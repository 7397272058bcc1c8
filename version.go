package hanscan

import "runtime/debug"

const (
	Name        = "hanscan"
	Description = "Extracts CJK string literals from C# sources into keyed translation tables"
	Version     = "0.1.0"
)

// Release builds stamp these:
//
//	-ldflags "-X github.com/ZaguanLabs/hanscan.Commit=$(git rev-parse HEAD) -X github.com/ZaguanLabs/hanscan.BuildDate=$(date -u +%Y-%m-%d)"
var (
	Commit    string
	BuildDate string
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
	Modified  bool // built from a dirty tree
}

// ReadBuildInfo merges the ldflags stamps with the VCS settings recorded
// by the toolchain. Stamped values win.
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String renders the version as 0.1.0, 0.1.0+abc1234 or 0.1.0+abc1234.dirty.
func (b BuildInfo) String() string {
	v := b.Version
	if b.Commit == "" {
		return v
	}
	short := b.Commit
	if len(short) > 7 {
		short = short[:7]
	}
	v += "+" + short
	if b.Modified {
		v += ".dirty"
	}
	return v
}
