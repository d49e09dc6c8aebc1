package main

import (
	"os"

	"github.com/adriangreen/ideas/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewTUIRootCommand()))
}
