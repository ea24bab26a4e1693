package main

import (
	"os"

	"CONVITE_GO/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
