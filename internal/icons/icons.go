// Package icons maps icon names used by content modules and templates to
// their SVG asset paths. The registry is generated by cmd/genicons from
// the literals actually referenced in content and templates, so unused
// icons never ship and unknown names fail the build.
package icons

import "sort"

// Path returns the asset path for an icon name.
func Path(name string) (string, bool) {
	p, ok := registry[name]
	return p, ok
}

// Known returns all registered icon names, sorted.
func Known() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
