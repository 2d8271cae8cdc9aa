package main

import (
	"os"

	"github.com/adalundhe/layerkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
