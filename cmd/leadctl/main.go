package main

import (
	"os"

	"btb_landing_go/cmd/leadctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
