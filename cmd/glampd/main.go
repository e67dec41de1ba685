// Package main provides the glampd CLI entry point.
package main

import "github.com/camposanto/glampd/internal/cli"

func main() {
	cli.Execute()
}
