package main

import "github.com/mockchain/mockchain/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
