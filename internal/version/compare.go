package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/zentools/pkg/errors"
)

// CheckVersionCompatibility checks whether a job file written for jobVersion can run on a
// tool at toolVersion. Returns nil if compatible, a coded error with details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
//
// Examples:
//   - Tool 1.2.0, Job 1.2.0 -> OK (exact match)
//   - Tool 1.2.1, Job 1.2.0 -> OK (patch differs)
//   - Tool 1.3.0, Job 1.2.0 -> ERROR (minor differs)
//   - Tool 2.0.0, Job 1.2.0 -> ERROR (major differs)
//   - Tool main, Job 1.2.0 -> OK (dev build, skip check)
func CheckVersionCompatibility(toolVersion, jobVersion string) error {
	// Strip 'v' prefix if present for consistency
	toolVersion = strings.TrimPrefix(toolVersion, "v")
	jobVersion = strings.TrimPrefix(jobVersion, "v")

	// Skip version check for "main" (development builds)
	if toolVersion == "main" || jobVersion == "main" {
		return nil
	}

	toolSemver, err := semver.NewVersion(toolVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid tool version '%s'", toolVersion)
	}

	jobSemver, err := semver.NewVersion(jobVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid job version '%s'", jobVersion)
	}

	if toolSemver.Major() != jobSemver.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch, "major version mismatch: tool is %d.x.x but job requires %d.x.x",
			toolSemver.Major(), jobSemver.Major())
	}

	if toolSemver.Minor() != jobSemver.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch, "minor version mismatch: tool is %d.%d.x but job requires %d.%d.x",
			toolSemver.Major(), toolSemver.Minor(),
			jobSemver.Major(), jobSemver.Minor())
	}

	// Patch versions can differ, so we're compatible
	return nil
}
