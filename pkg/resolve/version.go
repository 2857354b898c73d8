package resolve

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Floating version markers. A version ending in ".NEXT" tracks the next
// build to be produced; ".LATEST" tracks the most recent built version.
// Either marker outranks any fixed version during arbitration.
const (
	MarkerNext   = "NEXT"
	MarkerLatest = "LATEST"
)

// Version is the parsed form of a package version string: a three-segment
// numeric core, an optional fourth build-number segment, and an optional
// floating marker.
//
// The zero value represents "0.0.0", which every declared version outranks.
type Version struct {
	Major, Minor, Patch uint64
	Build               uint64 // optional fourth segment, 0 when absent
	Marker              string // "", MarkerNext, or MarkerLatest
}

// Floating reports whether the version carries a NEXT or LATEST marker.
func (v Version) Floating() bool { return v.Marker != "" }

// String formats the version back into manifest notation.
func (v Version) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(v.Major, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.Minor, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.Patch, 10))
	if v.Build > 0 {
		b.WriteByte('.')
		b.WriteString(strconv.FormatUint(v.Build, 10))
	}
	if v.Marker != "" {
		b.WriteByte('.')
		b.WriteString(v.Marker)
	}
	return b.String()
}

// ParseVersion parses a manifest version string. It never fails: malformed
// or missing segments coerce to zero so that one bad entry cannot abort an
// entire resolution. The second return value reports whether the input
// parsed cleanly; callers that care about diagnostics (see
// [Options.Logger]) can use it to flag coerced values.
func ParseVersion(s string) (Version, bool) {
	var v Version
	if s == "" {
		return v, true
	}

	segs := strings.Split(s, ".")
	if last := strings.ToUpper(segs[len(segs)-1]); last == MarkerNext || last == MarkerLatest {
		v.Marker = last
		segs = segs[:len(segs)-1]
	}

	clean := len(segs) <= 4
	if len(segs) > 4 {
		segs = segs[:4]
	}

	core := segs
	if len(core) > 3 {
		core = core[:3]
	}
	// Well-formed cores go through semver; anything it rejects falls back
	// to per-segment coercion below.
	if sv, err := semver.NewVersion(strings.Join(core, ".")); err == nil && sv.Prerelease() == "" && sv.Metadata() == "" {
		v.Major, v.Minor, v.Patch = sv.Major(), sv.Minor(), sv.Patch()
	} else {
		clean = false
		nums := make([]uint64, 3)
		for i := 0; i < len(core) && i < 3; i++ {
			if n, err := strconv.ParseUint(core[i], 10, 64); err == nil {
				nums[i] = n
			}
		}
		v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	}

	if len(segs) >= 4 {
		n, err := strconv.ParseUint(segs[3], 10, 64)
		if err != nil {
			clean = false
		}
		v.Build = n
	}
	return v, clean
}

// Compare orders two version strings for arbitration. It returns a negative
// value when a is older than b, zero when they rank equally, and a positive
// value when a is newer.
//
// Rules, in order:
//
//  1. A missing value compares lower than any present value; two missing
//     values compare equal.
//  2. A floating NEXT or LATEST marker outranks any version without one.
//  3. Otherwise the three-segment numeric cores decide, segment by segment.
//  4. The optional fourth build-number segment is the final tie-break
//     (absent coerces to zero).
//
// Compare never fails: malformed segments coerce to zero via [ParseVersion].
func Compare(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	case b == "":
		return 1
	}

	va, _ := ParseVersion(a)
	vb, _ := ParseVersion(b)

	if va.Floating() != vb.Floating() {
		if va.Floating() {
			return 1
		}
		return -1
	}
	return va.compare(vb)
}

func (v Version) compare(o Version) int {
	pairs := [4][2]uint64{
		{v.Major, o.Major},
		{v.Minor, o.Minor},
		{v.Patch, o.Patch},
		{v.Build, o.Build},
	}
	for _, p := range pairs {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}
