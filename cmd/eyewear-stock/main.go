package main

import (
	"os"

	"github.com/mkawano/eyewear-stock/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
