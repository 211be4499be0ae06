package release

import (
	"encoding/json"
	"errors"
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

var (
	// ErrNoVersionField is returned when a payload carries neither
	// a "version" nor a "name" field.
	ErrNoVersionField = errors.New("payload contains no version field")

	// zero is the sentinel compared against on fresh installs.
	//nolint:gochecknoglobals // Immutable sentinel shared by all callers.
	zero = goversion.Must(goversion.NewVersion("0.0.0"))
)

// Version is a semantic version with the total order defined by semver
// precedence: numeric comparison of major/minor/patch, pre-release tags
// ordering before the release they precede.
type Version struct {
	v *goversion.Version
}

// Parse converts a semantic version string into a Version.
func Parse(s string) (Version, error) {
	parsed, err := goversion.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("parse version %q: %w", s, err)
	}

	return Version{v: parsed}, nil
}

// MustParse is Parse that panics on error, for constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return v
}

// Zero returns the 0.0.0 sentinel representing "nothing installed".
func Zero() Version {
	return Version{v: zero}
}

// IsZero reports whether the version is unset or the 0.0.0 sentinel.
func (v Version) IsZero() bool {
	return v.v == nil || v.v.Equal(zero)
}

// LessThan reports whether v orders before o.
func (v Version) LessThan(o Version) bool {
	return v.v.LessThan(o.v)
}

// GreaterThan reports whether v orders after o.
func (v Version) GreaterThan(o Version) bool {
	return v.v.GreaterThan(o.v)
}

// Equal reports semver equality.
func (v Version) Equal(o Version) bool {
	return v.v.Equal(o.v)
}

// String returns the canonical version string.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}

	return v.v.String()
}

// payload is the JSON shape shared by the remote version endpoint and the
// local build_info.json metadata file.
type payload struct {
	// Version is the primary version field.
	Version string `json:"version"`
	// Name is the fallback field some payloads use instead.
	Name string `json:"name"`
}

// ParsePayload deserializes a JSON object carrying a version string under
// the "version" key (fallback "name") and parses it as a semantic version.
func ParsePayload(data []byte) (Version, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Version{}, fmt.Errorf("decode version payload: %w", err)
	}

	s := p.Version
	if s == "" {
		s = p.Name
	}

	if s == "" {
		return Version{}, ErrNoVersionField
	}

	return Parse(s)
}
