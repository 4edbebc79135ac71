package session

import (
	"strings"
	"unicode"
)

// SlugToTitle turns a workshop code into its display title. Each
// hyphen-separated segment gets its first letter upper-cased (leading digits
// are skipped, so "3d" becomes "3D"); everything else is kept as is and
// segments are joined by single spaces.
//
//	"3d-printing-basics" -> "3D Printing Basics"
func SlugToTitle(code string) string {
	if code == "" {
		return ""
	}
	segments := strings.Split(code, "-")
	for i, seg := range segments {
		segments[i] = upperFirstLetter(seg)
	}
	return strings.Join(segments, " ")
}

func upperFirstLetter(seg string) string {
	for i, r := range seg {
		if unicode.IsLetter(r) {
			return seg[:i] + string(unicode.ToUpper(r)) + seg[i+len(string(r)):]
		}
	}
	return seg
}
