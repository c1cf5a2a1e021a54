// Package main is the entry point for the pagecheck CLI.
package main

import "pagecheck.dev/pkg/pagecheck/cmd"

func main() {
	cmd.Execute()
}
