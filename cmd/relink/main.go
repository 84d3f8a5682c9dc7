// Command relink is the content relationship engine CLI.
package main

import (
	"github.com/relink-labs/relink-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
