// Package content loads the site's content modules: plain data records
// (services, FAQ, testimonials, portfolio, blog posts, pricing tables)
// kept as YAML files under the content directory and read once at startup.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/forgepoint/site-server/internal/pricing"
)

// Service describes one service offering and its detail page.
type Service struct {
	Slug         string   `yaml:"slug" json:"slug"`
	Title        string   `yaml:"title" json:"title"`
	Icon         string   `yaml:"icon" json:"icon"`
	Summary      string   `yaml:"summary" json:"summary"`
	Description  string   `yaml:"description" json:"description"`
	Deliverables []string `yaml:"deliverables" json:"deliverables"`
}

// FAQItem is one question/answer pair shown on the pricing page.
type FAQItem struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Testimonial is a client quote shown on the home page.
type Testimonial struct {
	Quote   string `yaml:"quote" json:"quote"`
	Author  string `yaml:"author" json:"author"`
	Role    string `yaml:"role" json:"role"`
	Company string `yaml:"company" json:"company"`
}

// Project is a portfolio entry.
type Project struct {
	Slug     string   `yaml:"slug" json:"slug"`
	Title    string   `yaml:"title" json:"title"`
	Client   string   `yaml:"client" json:"client"`
	Summary  string   `yaml:"summary" json:"summary"`
	Services []string `yaml:"services" json:"services"`
	URL      string   `yaml:"url" json:"url"`
}

// Post is a blog post. Bodies are stored as HTML fragments; the site has
// no CMS, posts are edited in the repo like any other content module.
type Post struct {
	Slug    string    `yaml:"slug" json:"slug"`
	Title   string    `yaml:"title" json:"title"`
	Author  string    `yaml:"author" json:"author"`
	Date    time.Time `yaml:"date" json:"date"`
	Summary string    `yaml:"summary" json:"summary"`
	Body    string    `yaml:"body" json:"body"`
	Tags    []string  `yaml:"tags" json:"tags"`
}

// Library is the loaded content for the whole site.
type Library struct {
	Services     []Service
	FAQ          []FAQItem
	Testimonials []Testimonial
	Portfolio    []Project
	Posts        []Post
	Pricing      pricing.Tables
}

// Load reads all content modules from dir. Missing optional files
// (testimonials, portfolio, posts) load as empty; services and pricing
// are required. Posts come back sorted newest-first.
func Load(dir string) (*Library, error) {
	lib := &Library{}

	if err := loadYAML(filepath.Join(dir, "services.yaml"), &lib.Services); err != nil {
		return nil, fmt.Errorf("loading services: %w", err)
	}
	if err := loadYAML(filepath.Join(dir, "pricing.yaml"), &lib.Pricing); err != nil {
		return nil, fmt.Errorf("loading pricing tables: %w", err)
	}
	if err := loadYAMLOptional(filepath.Join(dir, "faq.yaml"), &lib.FAQ); err != nil {
		return nil, fmt.Errorf("loading faq: %w", err)
	}
	if err := loadYAMLOptional(filepath.Join(dir, "testimonials.yaml"), &lib.Testimonials); err != nil {
		return nil, fmt.Errorf("loading testimonials: %w", err)
	}
	if err := loadYAMLOptional(filepath.Join(dir, "portfolio.yaml"), &lib.Portfolio); err != nil {
		return nil, fmt.Errorf("loading portfolio: %w", err)
	}
	if err := loadYAMLOptional(filepath.Join(dir, "posts.yaml"), &lib.Posts); err != nil {
		return nil, fmt.Errorf("loading posts: %w", err)
	}

	if err := lib.validate(); err != nil {
		return nil, err
	}

	sort.Slice(lib.Posts, func(i, j int) bool {
		return lib.Posts[i].Date.After(lib.Posts[j].Date)
	})

	return lib, nil
}

func (l *Library) validate() error {
	if len(l.Services) == 0 {
		return fmt.Errorf("no services defined")
	}
	slugs := map[string]bool{}
	for _, s := range l.Services {
		if s.Slug == "" || s.Title == "" {
			return fmt.Errorf("service %q missing slug or title", s.Title)
		}
		if slugs[s.Slug] {
			return fmt.Errorf("duplicate service slug %q", s.Slug)
		}
		slugs[s.Slug] = true
	}
	postSlugs := map[string]bool{}
	for _, p := range l.Posts {
		if p.Slug == "" {
			return fmt.Errorf("post %q missing slug", p.Title)
		}
		if postSlugs[p.Slug] {
			return fmt.Errorf("duplicate post slug %q", p.Slug)
		}
		postSlugs[p.Slug] = true
	}
	if err := l.Pricing.Validate(); err != nil {
		return fmt.Errorf("pricing tables: %w", err)
	}
	return nil
}

// ServiceBySlug returns the service with the given slug.
func (l *Library) ServiceBySlug(slug string) (Service, bool) {
	for _, s := range l.Services {
		if s.Slug == slug {
			return s, true
		}
	}
	return Service{}, false
}

// PostBySlug returns the post with the given slug.
func (l *Library) PostBySlug(slug string) (Post, bool) {
	for _, p := range l.Posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

func loadYAML(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, dst)
}

func loadYAMLOptional(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, dst)
}
