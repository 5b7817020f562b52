// Command producttable fetches a product catalog and shows it as a searchable,
// sortable, paginated table in the terminal, as JSON, or over HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rshade/producttable/internal/cli"
	"github.com/rshade/producttable/pkg/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := cli.Execute(ctx, root); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
