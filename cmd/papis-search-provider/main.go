// Command papis-search-provider serves papis library search results to
// the GNOME Shell overview.
package main

import (
	"os"

	"github.com/jnphilipp/papis-search-provider/internal/adapters/driving/cli"
)

// version is set by the linker: -ldflags "-X main.version=1.2.3".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
