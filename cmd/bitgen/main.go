package main

import "github.com/hitblunders/OpenFPGA/cmd/bitgen/cmd"

func main() {
	cmd.Execute()
}
