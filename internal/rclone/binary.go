package rclone

import (
	"context"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rotisserie/eris"
)

// MinVersion is the oldest rclone release that ships the rcd command.
var MinVersion = semver.MustParse("1.45.0")

// Binary is a resolved rclone executable.
type Binary struct {
	Path    string
	Version *semver.Version
}

// Supported reports whether the binary is new enough to serve the
// remote control API.
func (b Binary) Supported() bool {
	return b.Version == nil || !b.Version.LessThan(MinVersion)
}

// Locate resolves the rclone executable and probes its version. An
// explicit path skips the PATH lookup.
func Locate(ctx context.Context, runner Runner, explicit string) (Binary, error) {
	path := explicit
	if path == "" {
		found, err := runner.LookPath("rclone")
		if err != nil {
			return Binary{}, eris.Wrap(err, "cannot find rclone binary")
		}
		path = found
	}

	out, err := runner.Output(ctx, path, "version")
	if err != nil {
		return Binary{}, eris.Wrapf(err, "failed to probe %s", path)
	}
	version, err := parseVersion(string(out))
	if err != nil {
		// A binary that answers "version" oddly is still usable;
		// the control panel just cannot vouch for it.
		return Binary{Path: path}, nil
	}
	return Binary{Path: path, Version: version}, nil
}

// parseVersion extracts the release from `rclone version` output, whose
// first line looks like "rclone v1.67.0" or "rclone v1.68.0-beta.8000".
func parseVersion(output string) (*semver.Version, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "rclone" {
		return nil, eris.Errorf("unrecognized version output %q", line)
	}
	version, err := semver.NewVersion(strings.TrimPrefix(fields[1], "v"))
	if err != nil {
		return nil, eris.Wrapf(err, "unrecognized version %q", fields[1])
	}
	return version, nil
}
