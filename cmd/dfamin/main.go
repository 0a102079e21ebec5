// Package main is the entry point for the dfamin CLI.
package main

import "github.com/geange/dfamin/internal/cli"

func main() {
	cli.Execute()
}
