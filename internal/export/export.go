// Package export renders the portfolio as static HTML: one page per
// semester plus index.html for the default semester. Pages need no
// scripts; the carousel and the show-more panel are plain anchors and
// <details> elements.
package export

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"teachfolio/internal/assets"
	"teachfolio/internal/card"
	"teachfolio/internal/content"
	"teachfolio/internal/semester"
)

//go:embed templates/page.html.tmpl templates/style.css
var templateFS embed.FS

// IndexName is the file written for the default semester.
const IndexName = "index.html"

// maxParallelPages bounds concurrent page renders.
const maxParallelPages = 4

// Options tune an Exporter. Zero values are fine.
type Options struct {
	// SiteTitle overrides the <title> of every page.
	SiteTitle string
	// Now stamps the footer year. Defaults to time.Now.
	Now func() time.Time
}

// Exporter renders portfolio pages.
type Exporter struct {
	resolver assets.Resolver
	logger   *zap.Logger
	tmpl     *template.Template
	css      template.CSS
	md       goldmark.Markdown
	opts     Options
}

// New parses the embedded templates. A nil logger disables logging.
func New(resolver assets.Resolver, logger *zap.Logger, opts Options) (*Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	tmpl, err := template.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	css, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return nil, fmt.Errorf("failed to read stylesheet: %w", err)
	}

	return &Exporter{
		resolver: resolver,
		logger:   logger,
		tmpl:     tmpl,
		css:      template.CSS(css),
		md:       goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
		opts:     opts,
	}, nil
}

// PageName returns the file name of a semester page, e.g. "1/2568" ->
// "semester-1-2568.html".
func PageName(key string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(key) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		slug = "default"
	}
	return "semester-" + slug + ".html"
}

// RenderPage writes the page for one semester to w.
func (e *Exporter) RenderPage(w io.Writer, p *content.Portfolio, key string) error {
	catalog, err := semester.NewCatalog(p.Semesters)
	if err != nil {
		return err
	}
	cards, err := e.buildCards(card.NewDeck(p.Activities))
	if err != nil {
		return err
	}
	return e.render(w, p, catalog, cards, key)
}

func (e *Exporter) render(w io.Writer, p *content.Portfolio, catalog *semester.Catalog, cards []cardView, key string) error {
	sem, ok := catalog.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", semester.ErrUnknownSemester, key)
	}

	title := e.opts.SiteTitle
	if title == "" {
		title = orDefault(p.Profile.SiteTitle, "Portfolio")
	}

	view := pageView{
		Title:      title,
		Stylesheet: e.css,
		Profile:    p.Profile,
		AuthorLine: authorLine(p.Profile),
		Cards:      cards,
		Tabs:       buildTabs(p.Semesters, sem.Key),
		Semester:   buildSemester(e.resolver, sem),
		Year:       e.opts.Now().Year(),
	}
	if err := e.tmpl.ExecuteTemplate(w, "page.html.tmpl", view); err != nil {
		return fmt.Errorf("failed to render semester %q: %w", key, err)
	}
	return nil
}

// Export writes every semester page into dir and returns the written file
// names, sorted. Pages render concurrently; the first failure cancels the rest.
func (e *Exporter) Export(ctx context.Context, p *content.Portfolio, dir string) ([]string, error) {
	catalog, err := semester.NewCatalog(p.Semesters)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, catalog.Len())
	for _, key := range catalog.Keys() {
		name := PageName(key)
		if other, dup := names[name]; dup {
			return nil, fmt.Errorf("semesters %q and %q both map to %s", other, key, name)
		}
		names[name] = key
	}

	cards, err := e.buildCards(card.NewDeck(p.Activities))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	defaultKey := p.DefaultKey()

	var (
		mu      sync.Mutex
		written []string
	)
	record := func(name string) {
		mu.Lock()
		written = append(written, name)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPages)
	for _, key := range catalog.Keys() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := e.render(&buf, p, catalog, cards, key); err != nil {
				return err
			}

			name := PageName(key)
			if err := writeFile(dir, name, buf.Bytes()); err != nil {
				return err
			}
			record(name)

			if key == defaultKey {
				if err := writeFile(dir, IndexName, buf.Bytes()); err != nil {
					return err
				}
				record(IndexName)
			}

			e.logger.Debug("page written",
				zap.String("semester", key),
				zap.String("file", name),
				zap.Int("bytes", buf.Len()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(written)
	e.logger.Info("export complete",
		zap.String("dir", dir),
		zap.Int("pages", len(written)))
	return written, nil
}

func writeFile(dir, name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
