package main

import (
	"os"

	"github.com/weirlabs/weir/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
