package main

import (
	"os"

	"github.com/cuducos/astronomer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
