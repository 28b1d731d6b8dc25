package main

import (
	"os"

	"github.com/rmone/pursuitql/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
