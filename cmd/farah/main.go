package main

import (
	"os"

	"github.com/idilsaglam/farah/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
