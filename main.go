package main

import (
	"os"

	"github.com/calegray/siteshell/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
