package main

import (
	"os"

	"github.com/msalah0e/chainmap/cmd"
	"github.com/msalah0e/chainmap/data"
)

func main() {
	cmd.SetDataFS(data.FS)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
