// Package main provides the entry point for the forge CLI.
package main

import (
	"os"

	"github.com/ArielEspinoza07/console-forge/cmd/forge/commands"
)

func main() {
	os.Exit(commands.Execute())
}
