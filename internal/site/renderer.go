// Package site renders the marketing pages from Liquid templates.
// Each page template renders first, then gets wrapped by layout.liquid
// through the content binding. Templates are parsed once and cached.
package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/osteele/liquid"

	"github.com/forgepoint/site-server/internal/icons"
)

// PageMeta carries per-page SEO metadata into the layout.
type PageMeta struct {
	Title       string
	Description string
	Canonical   string
	OGImage     string
}

// Renderer renders named page templates with the shared site bindings.
type Renderer struct {
	engine *liquid.Engine
	dir    string
	cache  sync.Map // template file name -> *liquid.Template

	siteName string
	baseURL  string
}

// NewRenderer creates a renderer over the given template directory.
func NewRenderer(dir, siteName, baseURL string) *Renderer {
	r := &Renderer{
		engine:   liquid.NewEngine(),
		dir:      dir,
		siteName: siteName,
		baseURL:  baseURL,
	}
	r.registerFilters()
	return r
}

func (r *Renderer) registerFilters() {
	// {{ 4000 | money: "USD" }} -> "$4,000"
	r.engine.RegisterFilter("money", func(value interface{}, currency string) string {
		n, err := toInt(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		symbol := "$"
		if currency == "EUR" {
			symbol = "€"
		} else if currency == "GBP" {
			symbol = "£"
		}
		return symbol + groupThousands(n)
	})

	// {{ "code" | icon_path }} -> "/static/icons/code.svg"
	r.engine.RegisterFilter("icon_path", func(name string) string {
		path, ok := icons.Path(name)
		if !ok {
			return ""
		}
		return path
	})
}

// Render renders the named page template and wraps it in the layout.
func (r *Renderer) Render(name string, meta PageMeta, data map[string]interface{}) (string, error) {
	bindings := liquid.Bindings{
		"site": map[string]interface{}{
			"name":     r.siteName,
			"base_url": r.baseURL,
			"year":     time.Now().Year(),
		},
		"page": map[string]interface{}{
			"title":       meta.Title,
			"description": meta.Description,
			"canonical":   meta.Canonical,
			"og_image":    meta.OGImage,
		},
	}
	for k, v := range data {
		bindings[k] = v
	}

	body, err := r.renderFile(name+".liquid", bindings)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}

	bindings["content"] = body
	out, err := r.renderFile("layout.liquid", bindings)
	if err != nil {
		return "", fmt.Errorf("rendering layout: %w", err)
	}
	return out, nil
}

func (r *Renderer) renderFile(file string, bindings liquid.Bindings) (string, error) {
	tmpl, err := r.template(file)
	if err != nil {
		return "", err
	}
	return tmpl.RenderString(bindings)
}

func (r *Renderer) template(file string) (*liquid.Template, error) {
	if cached, ok := r.cache.Load(file); ok {
		return cached.(*liquid.Template), nil
	}

	src, err := os.ReadFile(filepath.Join(r.dir, file))
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", file, err)
	}
	tmpl, err := r.engine.ParseTemplate(src)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", file, err)
	}

	r.cache.Store(file, tmpl)
	return tmpl, nil
}

// CanonicalURL builds the canonical URL for a path.
func (r *Renderer) CanonicalURL(path string) string {
	return r.baseURL + path
}

func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("not a number: %v", value)
	}
}

func groupThousands(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return sign + s
	}
	var out []byte
	pre := len(s) % 3
	if pre > 0 {
		out = append(out, s[:pre]...)
	}
	for i := pre; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return sign + string(out)
}
