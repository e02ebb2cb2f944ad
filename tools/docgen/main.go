// Package main generates CLI reference documentation for the pce client and
// the pricing-engine server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	pce "github.com/jviciana84/prod-sub002/cmd/pce/cmd"
	server "github.com/jviciana84/prod-sub002/cmd/pricing-engine/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	flag.Parse()

	if err := generate(pce.Root(), filepath.Join(*output, "pce")); err != nil {
		log.Fatalf("generating pce docs: %v", err)
	}
	if err := generate(server.Root(), filepath.Join(*output, "pricing-engine")); err != nil {
		log.Fatalf("generating pricing-engine docs: %v", err)
	}

	fmt.Printf("CLI docs generated in %s/\n", *output)
}

func generate(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	root.DisableAutoGenTag = true
	return doc.GenMarkdownTree(root, dir)
}
