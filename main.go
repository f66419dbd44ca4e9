package main

import (
	"os"

	"github.com/bisegni/eatable/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
