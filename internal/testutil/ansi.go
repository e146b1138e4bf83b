// Package testutil holds helpers shared by the CLI and app tests.
package testutil

import "regexp"

// sgrPattern matches the CSI sequences fatih/color emits, such as "\x1b[1;36m"
// and the "\x1b[0m" reset.
var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// StripAnsiCodes returns s without terminal escape sequences, so themed
// output can be compared against plain golden strings.
func StripAnsiCodes(s string) string {
	return sgrPattern.ReplaceAllString(s, "")
}

// HasAnsiCodes reports whether s contains at least one escape sequence.
func HasAnsiCodes(s string) bool {
	return sgrPattern.MatchString(s)
}
