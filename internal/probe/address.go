package probe

import "strings"

// DefaultPort is appended to targets that carry no port.
const DefaultPort = "443"

var schemes = []string{"https://", "http://"}

// NormalizeAddress turns a user-supplied target into host:port form.
// A leading http:// or https:// is stripped and ":443" is appended when no
// port separator is present. The host itself is not validated; bad input
// surfaces later as a resolution failure.
func NormalizeAddress(raw string) string {
	s := raw
	for stripped := true; stripped; {
		stripped = false
		for _, p := range schemes {
			if strings.HasPrefix(s, p) {
				s = s[len(p):]
				stripped = true
			}
		}
	}
	if !strings.Contains(s, ":") {
		s += ":" + DefaultPort
	}
	return s
}
