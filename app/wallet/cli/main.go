// This program is the wallet cli for the tip jar node. It manages the
// node's signing key and calls the node's api.
package main

import "github.com/ardanlabs/tipjar/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
