package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/akarpinski/metascrape"
	"golang.org/x/net/html"
)

// Ensure Converter implements metascrape.Converter at compile time.
var _ metascrape.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown. Two
// configurations are used in practice: the lightweight default (images off)
// and a detailed one (images on). The configuration is fixed at construction
// rather than shared mutable state.
type Converter struct {
	conv *converter.Converter
}

type config struct {
	images bool
	tables bool
}

// Option configures a Converter.
type Option func(*config)

// WithImages controls whether images are rendered. Off by default.
func WithImages(enabled bool) Option {
	return func(c *config) {
		c.images = enabled
	}
}

// WithTables controls whether tables are preserved structurally. On by default.
func WithTables(enabled bool) Option {
	return func(c *config) {
		c.tables = enabled
	}
}

// NewConverter creates a new Converter. Links are always preserved and
// output is never wrapped to a line width.
func NewConverter(opts ...Option) *Converter {
	cfg := config{tables: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	}
	if cfg.tables {
		plugins = append(plugins, table.NewTablePlugin())
	}

	conv := converter.NewConverter(converter.WithPlugins(plugins...))

	if !cfg.images {
		conv.Register.RendererFor("img", converter.TagTypeInline, dropNode, converter.PriorityEarly)
	}

	return &Converter{conv: conv}
}

// dropNode renders an element as nothing.
func dropNode(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	return converter.RenderSuccess
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", metascrape.Errorf(metascrape.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
