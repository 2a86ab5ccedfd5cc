// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// CommandLine renders name and args as a single shell-quoted line for
// display and logging. It is never executed by a shell.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, 1+len(args))
	parts = append(parts, Quote(name))
	for _, a := range args {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}

// Quote returns s quoted for a POSIX shell when it needs quoting. Strings the
// shell printer cannot represent fall back to Go string syntax.
func Quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return strconv.Quote(s)
	}
	return q
}
