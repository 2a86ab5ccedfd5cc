// SPDX-License-Identifier: MPL-2.0

// Package modeltree discovers XAF model files (*.xafml) under a directory
// and groups localized and diff variants under their canonical file, e.g.
// Model_de.xafml under Model.xafml.
package modeltree
