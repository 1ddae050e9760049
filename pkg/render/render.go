// Package render executes the HTML templates of the site.
//
// Every page template defines the blocks of base.html. A page is parsed
// together with base.html and the files under includes/.
package render

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/fatih/structs"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

const (
	baseTemplate = "base.html"
	includesGlob = "includes/*.html"
)

// ContextProcessor adds values shared by every page.
type ContextProcessor func(ctx context.Context, data map[string]any)

type Renderer struct {
	pages      map[string]*template.Template
	processors []ContextProcessor
}

// New parses every page of fsys. Files of the root directory and includes/
// are not pages.
func New(fsys fs.FS, processors ...ContextProcessor) (*Renderer, error) {
	includes, err := fs.Glob(fsys, includesGlob)
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: map[string]*template.Template{}, processors: processors}
	err = fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || path.Ext(name) != ".html" {
			return nil
		}

		dir := path.Dir(name)
		if dir == "." || dir == "includes" {
			return nil
		}

		files := append([]string{baseTemplate}, includes...)
		files = append(files, name)

		t, err := template.New(baseTemplate).Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}

		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Render writes the page name with data. A struct is converted to a map by
// its field names, so context processors can add their values next to it.
func (r *Renderer) Render(ctx context.Context, w io.Writer, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	return t.ExecuteTemplate(w, baseTemplate, r.data(ctx, data))
}

func (r *Renderer) data(ctx context.Context, page any) map[string]any {
	var data map[string]any
	switch v := page.(type) {
	case nil:
		data = map[string]any{}
	case map[string]any:
		data = make(map[string]any, len(v))
		for k, val := range v {
			data[k] = val
		}
	default:
		if structs.IsStruct(page) {
			data = structs.Map(page)
		} else {
			data = map[string]any{"Data": page}
		}
	}

	for _, p := range r.processors {
		p(ctx, data)
	}

	return data
}

// User is the current user as seen by templates.
type User struct {
	ID              string
	Username        string
	IsAuthenticated bool
}

// Year adds the current year.
func Year(ctx context.Context, data map[string]any) {
	data["Year"] = time.Now().Year()
}

// RequestUser adds the user of the request.
func RequestUser(ctx context.Context, data map[string]any) {
	id := xcontext.RequestUserID(ctx)
	data["User"] = User{
		ID:              id,
		Username:        xcontext.RequestUsername(ctx),
		IsAuthenticated: id != "",
	}
}

// RequestPath adds the path of the request.
func RequestPath(ctx context.Context, data map[string]any) {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return
	}

	data["Path"] = req.URL.Path
}

var funcs = template.FuncMap{
	"date":          formatDate,
	"linebreaksbr":  linebreaksbr,
	"truncatewords": truncateWords,
	"pluralize":     pluralize,
}

const dateLayout = "2 January 2006"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// linebreaksbr escapes s and converts its newlines to <br>.
func linebreaksbr(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func truncateWords(n int, s string) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}

	return strings.Join(words[:n], " ") + " …"
}

func pluralize(n int64, singular, plural string) string {
	if n == 1 {
		return singular
	}

	return plural
}
