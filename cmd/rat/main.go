// Command rat is a split-pane terminal multiplexer and code editor (spec.md
// §1). See internal/cli for the flag surface and internal/app for how the
// pieces are wired together at startup.
package main

import (
	"os"

	"rat/internal/app"
	"rat/internal/cli"
)

func main() {
	cli.RunApp = app.Run
	os.Exit(cli.Execute())
}
