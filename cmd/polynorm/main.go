// Command polynorm normalizes, evaluates and compares expression trees.
package main

import (
	"context"
	"os"

	"github.com/njchilds90/polynorm/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
