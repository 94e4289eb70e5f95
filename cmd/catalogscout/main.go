// ABOUTME: Entry point for the CatalogScout DHI catalog matching service.
// ABOUTME: Delegates to the cobra command tree.

package main

import "github.com/jfeddern/CatalogScout/internal/cli"

func main() {
	cli.Execute()
}
