package main

import (
	"os"

	"github.com/hdupoux/inventaire/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
