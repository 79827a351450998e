// Command genicons regenerates the icon registry. It scans the content
// modules and Liquid templates for icon name literals, verifies each one
// has an SVG in the static icon directory, and rewrites the registry
// source file. Run it whenever an icon reference is added or removed:
//
//	go run ./cmd/genicons
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/forgepoint/site-server/internal/icongen"
)

func main() {
	var (
		contentDir   = flag.String("content", "content", "content module directory to scan")
		templatesDir = flag.String("templates", "web/templates", "template directory to scan")
		iconDir      = flag.String("icons", "web/static/icons", "SVG icon directory")
		publicPrefix = flag.String("prefix", "/static/icons", "public URL prefix for icon assets")
		outPath      = flag.String("out", "internal/icons/registry_gen.go", "output source file")
	)
	flag.Parse()

	if err := run(*contentDir, *templatesDir, *iconDir, *publicPrefix, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "genicons: %v\n", err)
		os.Exit(1)
	}
}

func run(contentDir, templatesDir, iconDir, publicPrefix, outPath string) error {
	used, err := icongen.Scan(contentDir, templatesDir)
	if err != nil {
		return err
	}
	if len(used) == 0 {
		return fmt.Errorf("no icon references found under %s or %s", contentDir, templatesDir)
	}

	catalog, err := icongen.Catalog(iconDir, publicPrefix)
	if err != nil {
		return err
	}

	src, err := icongen.Generate(used, catalog)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, src, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d icons)\n", outPath, len(used))
	return nil
}
