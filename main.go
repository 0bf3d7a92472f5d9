// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/autogen/batchautogen/cmd/batchautogen"

func main() {
	cmd.Execute()
}
