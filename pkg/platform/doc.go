// SPDX-License-Identifier: MPL-2.0

// Package platform provides host operating system constants used when the
// behavior differs per platform (executable suffixes, process detaching,
// configuration directory layout).
package platform
