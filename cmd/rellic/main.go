package main

import (
	"os"

	"github.com/konchunas/rellic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
