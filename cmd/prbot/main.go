package main

import (
	"os"

	"github.com/doublet/prbot/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
