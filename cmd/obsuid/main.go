package main

import (
	"os"

	"obsui/internal/cli"
)

func main() { os.Exit(cli.Main()) }
