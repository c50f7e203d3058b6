package library

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/girgen/internal/errors"
)

// Version is a native library version such as 3.10 or 2.44.1.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// ParseVersion parses "major.minor" or "major.minor.patch".
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, errors.Newf("invalid version %q: expected major.minor[.patch]", s)
	}

	var nums [3]uint16
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return Version{}, errors.Wrapf(err, "invalid version %q", s)
		}
		nums[i] = uint16(n)
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParseVersion is ParseVersion for literals known to be valid.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseOptionalVersion returns nil for an empty string.
func ParseOptionalVersion(s string) (*Version, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := ParseVersion(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Compare returns -1, 0 or 1.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return cmpUint(v.Major, o.Major)
	case v.Minor != o.Minor:
		return cmpUint(v.Minor, o.Minor)
	default:
		return cmpUint(v.Patch, o.Patch)
	}
}

func cmpUint(a, b uint16) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func (v Version) String() string {
	if v.Patch > 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// FeatureName is the cargo feature gating this version, e.g. "v3_10".
func (v Version) FeatureName() string {
	if v.Patch > 0 {
		return fmt.Sprintf("v%d_%d_%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("v%d_%d", v.Major, v.Minor)
}

// ToCfg renders the cfg predicate for this version: feature = "v3_10".
func (v Version) ToCfg() string {
	return fmt.Sprintf("feature = %q", v.FeatureName())
}

// MarshalText renders the version as "major.minor[.patch]".
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText parses "major.minor[.patch]".
func (v *Version) UnmarshalText(b []byte) error {
	parsed, err := ParseVersion(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
