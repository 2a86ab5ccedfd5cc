// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the xafmodel command tree. Handlers receive an App,
// which wires configuration, logging and the open pipeline's collaborators.
package cmd
