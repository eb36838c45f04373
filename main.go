package main

import (
	"os"

	"github.com/neuppl/are-we-sdd-yet/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
