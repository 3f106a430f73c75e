package main

import (
	"os"

	"github.com/mikaelmello/goicmp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
