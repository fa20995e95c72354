package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"repohub/internal/cli"
)

func main() {
	if err := cli.NewApp(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}
