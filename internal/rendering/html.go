package rendering

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jonathan/skillboard/internal/selection"
	"github.com/jonathan/skillboard/internal/types"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// templateFiles are parsed in this order; every region template must be defined.
var templateFiles = []string{"levels.html", "groups.html", "details.html", "layout.html"}

const pageTemplate = "page"

// DefaultTitle is used when PageData has no title.
const DefaultTitle = "Skillboard"

// PageData is the input for a full page render.
type PageData struct {
	Title     string
	Dataset   types.Dataset
	Selection selection.Selection
}

// pageView is what the layout template sees.
type pageView struct {
	Title   string
	Levels  []FilterItem
	Groups  []FilterItem
	Details []selection.GroupDetail
}

const mimeHTML = "text/html"

// Renderer executes the region and page templates.
type Renderer struct {
	tmpl     *template.Template
	minifier *minify.M
	logger   *zap.Logger
}

// newMinifier keeps attribute quotes and optional tags.
func newMinifier() *minify.M {
	m := minify.New()
	m.Add(mimeHTML, &html.Minifier{
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepDefaultAttrVals: true,
	})
	return m
}

// funcMap holds the display helpers shared by every template
var funcMap = template.FuncMap{
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
}

// NewRenderer parses the built-in templates.
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, &TemplateError{Message: "failed to open embedded templates", Cause: err}
	}
	return newRenderer(sub, logger)
}

// NewRendererFromDir parses templates from a directory on disk, so the markup can be
// customized without rebuilding. The directory must contain every template file.
func NewRendererFromDir(dir string, logger *zap.Logger) (*Renderer, error) {
	for _, name := range templateFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, &TemplateError{
				Name:    name,
				Message: fmt.Sprintf("template file not found: %s", path),
				Cause:   err,
			}
		}
	}
	return newRenderer(os.DirFS(dir), logger)
}

func newRenderer(fsys fs.FS, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl := template.New("skillboard").Funcs(funcMap)
	for _, name := range templateFiles {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, &TemplateError{Name: name, Message: "failed to read template", Cause: err}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return nil, &TemplateError{Name: name, Message: "failed to parse template", Cause: err}
		}
	}

	for _, region := range selection.AllRegions {
		if tmpl.Lookup(string(region)) == nil {
			return nil, &TemplateError{Name: string(region), Message: "region template not defined"}
		}
	}
	if tmpl.Lookup(pageTemplate) == nil {
		return nil, &TemplateError{Name: pageTemplate, Message: "page template not defined"}
	}

	return &Renderer{tmpl: tmpl, minifier: newMinifier(), logger: logger}, nil
}

// regionData builds the view-model for one region.
func (r *Renderer) regionData(region selection.Region, dataset types.Dataset, sel selection.Selection) (any, error) {
	switch region {
	case selection.RegionLevelFilter:
		return LevelFilter(sel), nil
	case selection.RegionGroupFilter:
		return GroupFilter(dataset, sel), nil
	case selection.RegionDetails:
		return selection.Details(dataset, sel, r.logger), nil
	default:
		return nil, &RenderError{Target: string(region), Message: "unknown region"}
	}
}

// RenderRegion writes one region's markup. Nothing is written when rendering fails.
func (r *Renderer) RenderRegion(w io.Writer, region selection.Region, dataset types.Dataset, sel selection.Selection) error {
	data, err := r.regionData(region, dataset, sel)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, string(region), data); err != nil {
		return &RenderError{Target: string(region), Message: "failed to execute region", Cause: err}
	}

	_, err = buf.WriteTo(w)
	return err
}

// RenderRegions renders several regions and returns their markup keyed by region.
func (r *Renderer) RenderRegions(dataset types.Dataset, sel selection.Selection, regions []selection.Region) (map[selection.Region]string, error) {
	out := make(map[selection.Region]string, len(regions))
	for _, region := range regions {
		var buf bytes.Buffer
		if err := r.RenderRegion(&buf, region, dataset, sel); err != nil {
			return nil, err
		}
		out[region] = buf.String()
	}
	return out, nil
}

// RenderPage writes a full, minified HTML page containing all three regions.
func (r *Renderer) RenderPage(w io.Writer, data PageData) error {
	title := data.Title
	if title == "" {
		title = DefaultTitle
	}

	view := pageView{
		Title:   title,
		Levels:  LevelFilter(data.Selection),
		Groups:  GroupFilter(data.Dataset, data.Selection),
		Details: selection.Details(data.Dataset, data.Selection, r.logger),
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, pageTemplate, view); err != nil {
		return &RenderError{Target: pageTemplate, Message: "failed to execute", Cause: err}
	}

	var out bytes.Buffer
	if err := r.minifier.Minify(mimeHTML, &out, &buf); err != nil {
		return &RenderError{Target: pageTemplate, Message: "failed to minify", Cause: err}
	}

	_, err := out.WriteTo(w)
	return err
}
