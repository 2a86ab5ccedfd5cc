// SPDX-License-Identifier: MPL-2.0

package project

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/xafmodel/xafmodel/pkg/types"
)

// PackagePrefix is the NuGet package id prefix whose version selects the
// Model Editor release.
const PackagePrefix = "DevExpress.ExpressApp"

var (
	// ErrVersionNotFound is returned when a descriptor references no
	// DevExpress.ExpressApp package with a usable version.
	ErrVersionNotFound = errors.New("devexpress version not found")

	// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
	ErrInvalidVersion = errors.New("invalid version")

	versionPattern = regexp.MustCompile(`^\d+(\.\d+){1,3}$`)

	// packageReferencePattern matches Include before Version on a single
	// PackageReference element. Element and attribute names follow MSBuild
	// and compare case-insensitively.
	packageReferencePattern = regexp.MustCompile(
		`(?i)<PackageReference\b[^>]*\bInclude\s*=\s*"` + regexp.QuoteMeta(PackagePrefix) +
			`[^"]*"[^>]*\bVersion\s*=\s*"([^"]*)"`)

	lineVersionPattern = regexp.MustCompile(`(?i)\bVersion\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

type (
	// Version is a dotted numeric version: major.minor[.patch[.build]].
	Version string

	// InvalidVersionError is returned when a Version does not match the
	// dotted numeric form.
	InvalidVersionError struct {
		Value Version
	}
)

// ParseVersion validates s and returns it as a Version.
func ParseVersion(s string) (Version, error) {
	v := Version(strings.TrimSpace(s))
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

// String returns the string representation of the Version.
func (v Version) String() string { return string(v) }

// Validate returns an error if v is not a dotted numeric version with two to
// four components.
func (v Version) Validate() error {
	if !versionPattern.MatchString(string(v)) {
		return &InvalidVersionError{Value: v}
	}
	return nil
}

// Short returns the first two components ("23.2.5" -> "23.2"), the form used
// in install directory and executable names.
func (v Version) Short() string {
	parts := strings.SplitN(string(v), ".", 3)
	if len(parts) < 2 {
		return string(v)
	}
	return parts[0] + "." + parts[1]
}

// Error implements the error interface for InvalidVersionError.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: expected major.minor[.patch[.build]]", e.Value)
}

// Unwrap returns ErrInvalidVersion for errors.Is() compatibility.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }

// ExtractVersion reads the descriptor at path and returns the first
// DevExpress.ExpressApp package version it references.
func ExtractVersion(path types.FilesystemPath) (Version, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return "", fmt.Errorf("read project descriptor %s: %w", path, err)
	}
	v, err := ExtractVersionFromContent(string(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// ExtractVersionFromContent scans descriptor text in two passes. The strict
// pass matches PackageReference elements in document order. When it finds
// nothing, every line mentioning the package prefix is searched for a quoted
// Version attribute in any position. The first value that parses as a
// Version wins in both passes; MSBuild properties such as $(DxVersion) are
// skipped.
//
// The fallback can pick up a version from an unrelated attribute on a line
// that merely mentions the prefix; callers that need certainty should treat
// the result as a hint.
func ExtractVersionFromContent(content string) (Version, error) {
	for _, m := range packageReferencePattern.FindAllStringSubmatch(content, -1) {
		if v, err := ParseVersion(m[1]); err == nil {
			return v, nil
		}
	}

	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, PackagePrefix) {
			continue
		}
		for _, m := range lineVersionPattern.FindAllStringSubmatch(line, -1) {
			if v, err := ParseVersion(m[1] + m[2]); err == nil {
				return v, nil
			}
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("scan descriptor: %w", err)
	}
	return "", ErrVersionNotFound
}
