package main

import (
	"os"

	"github.com/Vinzor11/hrgrid/cmd/hrgrid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
