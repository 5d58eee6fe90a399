package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"glossgraph/internal/cli"
)

//go:embed web/*
var webFS embed.FS

//go:embed seed/*.yaml
var seedFS embed.FS

func main() {
	web, err := fs.Sub(webFS, "web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "embedded web content: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(cli.Assets{Web: web, Seed: seedFS}); err != nil {
		os.Exit(1)
	}
}
