package main

import (
	"os"

	"github.com/edward-ap/stepprogress/internal/cli"
	"github.com/edward-ap/stepprogress/internal/demoapp"
)

func main() {
	// No args opens the demo window; anything else goes through the CLI.
	if len(os.Args) == 1 {
		demoapp.NewApp(demoapp.Options{}).Run()
		return
	}
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
