package layout

import (
	"fmt"
	"regexp"
)

var alignPattern = regexp.MustCompile(`^(h[clr])?(v[tcb])?(j[clr])?$|^[lcr]$`)

// ParseAlign checks an alignment token: a single l, c or r, or an ordered
// combination of h[lcr], v[tcb] and j[lcr]. The empty token is valid and
// leaves the renderer default.
func ParseAlign(s string) (string, error) {
	if s == "" || alignPattern.MatchString(s) {
		return s, nil
	}
	return "", fmt.Errorf("invalid align value %q", s)
}
