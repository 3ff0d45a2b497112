package main

import (
	"os"

	"github.com/flowlens/flowlens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
