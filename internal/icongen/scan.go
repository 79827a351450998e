// Package icongen implements the icon registry code generator. It scans
// content modules and Liquid templates for icon name literals, checks them
// against the SVG catalog on disk, and emits the lookup source file.
package icongen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Icon literals appear two ways: `icon: code` fields in content YAML and
// `{{ "code" | icon_path }}` filter calls in templates.
var (
	yamlIconRe     = regexp.MustCompile(`(?m)\bicon:\s*"?([a-zA-Z][a-zA-Z0-9_-]*)"?`)
	templateIconRe = regexp.MustCompile(`{{-?\s*"([a-zA-Z][a-zA-Z0-9_-]*)"\s*\|\s*icon_path`)
)

// scannable file extensions
var scanExts = map[string]bool{
	".yaml":   true,
	".yml":    true,
	".liquid": true,
}

// Scan walks the given directories and returns the deduplicated, sorted
// set of icon names referenced in content and template files.
func Scan(dirs ...string) ([]string, error) {
	seen := map[string]bool{}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !scanExts[filepath.Ext(path)] {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			for _, m := range yamlIconRe.FindAllSubmatch(data, -1) {
				seen[string(m[1])] = true
			}
			for _, m := range templateIconRe.FindAllSubmatch(data, -1) {
				seen[string(m[1])] = true
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Catalog lists the SVG assets available under iconDir, keyed by icon
// name (file base name) with the public asset path as value.
func Catalog(iconDir, publicPrefix string) (map[string]string, error) {
	entries, err := os.ReadDir(iconDir)
	if err != nil {
		return nil, fmt.Errorf("reading icon catalog: %w", err)
	}

	catalog := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".svg" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".svg")
		catalog[name] = publicPrefix + "/" + e.Name()
	}
	return catalog, nil
}

// Generate renders the registry source file for the used icon names.
// Any name missing from the catalog fails with a listing of offenders,
// so a typo in a content file breaks the build instead of the page.
func Generate(used []string, catalog map[string]string) ([]byte, error) {
	var missing []string
	for _, name := range used {
		if _, ok := catalog[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unknown icon name(s): %s", strings.Join(missing, ", "))
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by cmd/genicons. DO NOT EDIT.\n\n")
	buf.WriteString("package icons\n\n")
	buf.WriteString("var registry = map[string]string{\n")

	width := 0
	for _, name := range used {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, name := range used {
		pad := strings.Repeat(" ", width-len(name))
		fmt.Fprintf(&buf, "\t%q:%s %q,\n", name, pad, catalog[name])
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}
