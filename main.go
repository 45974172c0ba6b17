// SPDX-License-Identifier: MPL-2.0

package main

import cmd "crateci/cmd/crateci"

func main() {
	cmd.Execute()
}
