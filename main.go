// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/xafmodel/xafmodel/cmd/xafmodel"

func main() {
	cmd.Execute()
}
