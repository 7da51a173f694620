package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultCodeTheme is the chroma style used for fenced code blocks.
const DefaultCodeTheme = "github"

// HTML renders GitHub-flavored markdown with highlighted code and MathJax
// math, then sanitizes the result.
type HTML struct {
	md        goldmark.Markdown
	pol       *bluemonday.Policy
	codeTheme string
}

var classPattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)

func NewHTML(codeTheme string) *HTML {
	if codeTheme == "" {
		codeTheme = DefaultCodeTheme
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			mathjax.MathJax,
			highlighting.NewHighlighting(
				highlighting.WithStyle(codeTheme),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	pol := bluemonday.UGCPolicy()
	pol.AllowAttrs("class").Matching(classPattern).Globally()
	pol.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")
	pol.AllowAttrs("type", "checked", "disabled").OnElements("input")

	return &HTML{md: md, pol: pol, codeTheme: codeTheme}
}

// Render converts src to a sanitized HTML fragment.
func (h *HTML) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return h.pol.SanitizeBytes(buf.Bytes()), nil
}

// CSS returns the stylesheet for the configured code theme.
func (h *HTML) CSS() (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(h.codeTheme)); err != nil {
		return "", fmt.Errorf("write code css: %w", err)
	}
	return buf.String(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
<style>
body { max-width: 860px; margin: 2rem auto; padding: 0 1rem; font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; line-height: 1.6; }
pre { padding: .75rem; overflow-x: auto; border-radius: 6px; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d0d7de; padding: .3rem .7rem; }
{{ .CSS }}
</style>
<script>
MathJax = { tex: { inlineMath: [['$', '$'], ['\\(', '\\)']] } };
</script>
<script async src="https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-chtml.js"></script>
</head>
<body>
<article class="markdown-body">
{{ .Body }}
</article>
{{ if .LiveReload }}<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.action === "reload") {
      sessionStorage.setItem("mdsplit-scroll", String(window.scrollY));
      location.reload();
    }
  };
  var y = sessionStorage.getItem("mdsplit-scroll");
  if (y !== null) { window.scrollTo(0, Number(y)); sessionStorage.removeItem("mdsplit-scroll"); }
})();
</script>{{ end }}
</body>
</html>
`))

// Page wraps a rendered fragment in a standalone HTML document. liveReload
// adds the websocket client used by the preview server.
func (h *HTML) Page(title string, body []byte, liveReload bool) ([]byte, error) {
	css, err := h.CSS()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title      string
		CSS        template.CSS
		Body       template.HTML
		LiveReload bool
	}{
		Title:      title,
		CSS:        template.CSS(css),
		Body:       template.HTML(body), //nolint:gosec // sanitized by bluemonday
		LiveReload: liveReload,
	})
	if err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}

// Document renders src and wraps it in a page.
func (h *HTML) Document(title string, src []byte, liveReload bool) ([]byte, error) {
	body, err := h.Render(src)
	if err != nil {
		return nil, err
	}
	return h.Page(title, body, liveReload)
}
