// Package pages renders the resolved reference graph into a browsable
// documentation tree: one markdown page per object (library and synthetic),
// plus an index page per type.
package pages

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/kibrary/kibrary/internal/atomicfile"
	"github.com/kibrary/kibrary/internal/graph"
	"github.com/kibrary/kibrary/internal/model"
)

// Options configures a documentation build.
type Options struct {
	// OutDir is the documentation root; type subdirectories are created
	// beneath it.
	OutDir string

	// HTML additionally renders every page body to a sibling .html file.
	HTML bool
}

// frontmatter is the YAML header of every generated page.
type frontmatter struct {
	ID    string `yaml:"id"`
	Type  string `yaml:"type"`
	Title string `yaml:"title"`
}

// Generate writes the documentation tree and returns the number of object
// pages written.
func Generate(g *graph.Graph, opts Options) (int, error) {
	if opts.OutDir == "" {
		return 0, fmt.Errorf("documentation output directory is required")
	}

	byType := map[model.Type][]*model.Object{}
	for _, obj := range g.Objects() {
		byType[obj.Type] = append(byType[obj.Type], obj)
	}

	count := 0
	for typ, objects := range byType {
		dir := filepath.Join(opts.OutDir, string(typ))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return count, fmt.Errorf("create docs directory: %w", err)
		}

		for _, obj := range objects {
			page, err := renderPage(g, obj)
			if err != nil {
				return count, err
			}
			path := filepath.Join(dir, PageName(obj.ID))
			if err := writePage(path, page, opts.HTML); err != nil {
				return count, err
			}
			count++
		}

		indexPage := renderTypeIndex(typ, objects)
		if err := writePage(filepath.Join(dir, "index.md"), indexPage, opts.HTML); err != nil {
			return count, err
		}
	}
	return count, nil
}

// PageName returns the markdown file name for an object id. The type prefix
// is dropped (pages already live in a per-type directory) and the rest is
// slugified.
func PageName(id string) string {
	name := id
	if i := strings.Index(id, ":"); i >= 0 {
		name = id[i+1:]
	}
	return slug.Make(name) + ".md"
}

// RenderObject builds the markdown page body for one object. Exposed so the
// show command can render the same content in the terminal.
func RenderObject(g *graph.Graph, obj *model.Object) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", obj.Title())
	fmt.Fprintf(&b, "- **id**: `%s`\n", obj.ID)
	fmt.Fprintf(&b, "- **type**: %s\n", obj.Type)
	if len(obj.Includes) > 0 {
		names := make([]string, 0, len(obj.Includes))
		for name := range obj.Includes {
			names = append(names, name)
		}
		// Stable order for diffable docs.
		sort.Strings(names)
		fmt.Fprintf(&b, "- **includes**: %s\n", strings.Join(names, ", "))
	}

	writeEdgeSection(&b, "Uses", g.Uses(obj.ID))
	writeEdgeSection(&b, "Used by", g.UsedBy(obj.ID))
	return b.String()
}

func renderPage(g *graph.Graph, obj *model.Object) ([]byte, error) {
	fm, err := yaml.Marshal(frontmatter{
		ID:    obj.ID,
		Type:  string(obj.Type),
		Title: obj.Title(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter for %s: %w", obj.ID, err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")
	buf.WriteString(RenderObject(g, obj))
	return buf.Bytes(), nil
}

func renderTypeIndex(typ model.Type, objects []*model.Object) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", typ)
	for _, obj := range objects {
		fmt.Fprintf(&b, "- [%s](%s)\n", obj.Title(), PageName(obj.ID))
	}
	return b.Bytes()
}

func writeEdgeSection(b *strings.Builder, heading string, targets []*model.Object) {
	if len(targets) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for _, t := range targets {
		fmt.Fprintf(b, "- [%s](../%s/%s) (%s)\n", t.Title(), t.Type, PageName(t.ID), t.Type)
	}
}

func writePage(path string, content []byte, html bool) error {
	if err := atomicfile.WriteFile(path, content, 0); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	if !html {
		return nil
	}

	body := stripFrontmatter(content)
	var out bytes.Buffer
	if err := goldmark.Convert(body, &out); err != nil {
		return fmt.Errorf("render html for %s: %w", path, err)
	}
	htmlPath := strings.TrimSuffix(path, ".md") + ".html"
	if err := atomicfile.WriteFile(htmlPath, out.Bytes(), 0); err != nil {
		return fmt.Errorf("write html page: %w", err)
	}
	return nil
}

// stripFrontmatter removes a leading YAML frontmatter block before HTML
// rendering; goldmark would otherwise render the delimiters as a heading.
func stripFrontmatter(content []byte) []byte {
	s := string(content)
	if !strings.HasPrefix(s, "---\n") {
		return content
	}
	rest := s[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return content
	}
	return []byte(strings.TrimPrefix(rest[end+len("\n---\n"):], "\n"))
}
