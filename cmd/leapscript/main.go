// Package main provides the LeapScript CLI.
package main

import "github.com/leapstack-labs/leapscript/internal/cli"

func main() {
	cli.Execute()
}
