package icongen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScanFindsAndDeduplicates(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"services.yaml": `
- slug: web
  icon: code
- slug: cloud
  icon: "cloud"
- slug: apps
  icon: code
`,
		"home.liquid": `<img src="{{ "rocket" | icon_path }}"> {{ "code" | icon_path }}`,
		"notes.txt":   `icon: ignored-extension`,
	})

	names, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []string{"cloud", "code", "rocket"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, names)
			break
		}
	}
}

func TestCatalog(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"code.svg":  "<svg/>",
		"cloud.svg": "<svg/>",
		"readme.md": "not an icon",
	})

	catalog, err := Catalog(dir, "/static/icons")
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}

	if len(catalog) != 2 {
		t.Fatalf("Expected 2 icons, got %d", len(catalog))
	}
	if catalog["code"] != "/static/icons/code.svg" {
		t.Errorf("Unexpected path %q", catalog["code"])
	}
}

func TestGenerate(t *testing.T) {
	catalog := map[string]string{
		"code":  "/static/icons/code.svg",
		"cloud": "/static/icons/cloud.svg",
	}

	out, err := Generate([]string{"cloud", "code"}, catalog)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	src := string(out)
	if !strings.HasPrefix(src, "// Code generated by cmd/genicons. DO NOT EDIT.") {
		t.Error("Missing generated-code header")
	}
	if !strings.Contains(src, `"cloud": "/static/icons/cloud.svg",`) {
		t.Errorf("cloud entry missing:\n%s", src)
	}
	// Deterministic: same input, same bytes
	again, err := Generate([]string{"cloud", "code"}, catalog)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if string(again) != src {
		t.Error("Generate output is not deterministic")
	}
}

func TestGenerateUnknownIcon(t *testing.T) {
	_, err := Generate([]string{"code", "sparkles"}, map[string]string{"code": "/static/icons/code.svg"})
	if err == nil {
		t.Fatal("Expected error for unknown icon")
	}
	if !strings.Contains(err.Error(), "sparkles") {
		t.Errorf("Error should name the offender: %v", err)
	}
}
