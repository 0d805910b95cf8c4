package protocol

import "github.com/coreos/go-semver/semver"

// ApiVersion is the device-reported protocol API version gating optional
// payload fields. A nil pointer means the version has not been learned yet.
//
// Gating policy: when the version is unknown, version-gated fields are
// NEVER read. Every decoder applies this uniformly through AtLeast.
type ApiVersion = semver.Version

// NewApiVersion builds the version triple from the major/minor bytes of an
// MSP_API_VERSION reply. MSP does not carry a patch component.
func NewApiVersion(major, minor uint8) *ApiVersion {
	return &ApiVersion{Major: int64(major), Minor: int64(minor)}
}

// MustParseApiVersion parses a dotted triple like "1.43.0". Panics on bad
// input; intended for static thresholds.
func MustParseApiVersion(s string) *ApiVersion {
	return semver.New(s)
}

// AtLeast reports whether api is known and not older than min. Standard
// dotted-triple numeric comparison: major, then minor, then patch.
func AtLeast(api *ApiVersion, min *ApiVersion) bool {
	if api == nil {
		return false
	}
	return !api.LessThan(*min)
}
