package main

import (
	"os"

	"github.com/chokolattee/avocare/cmd/avocare/commands"
)

var version = "dev"

func main() {
	if err := commands.Execute(version); err != nil {
		os.Exit(1)
	}
}
