// Command clikit generates, installs and tests shell completion for programs described by a
// definition file (see package definition).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	parser, err := newParser(stdout)
	if err != nil {
		return err
	}

	return parser.Execute(ctx, args)
}
