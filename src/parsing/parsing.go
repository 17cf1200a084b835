package parsing

import (
	"bytes"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Used for generating the final HTML for posts and comments. Raw inline HTML
// is never passed through; everything user-visible is generated by goldmark.
var RealMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlightExtension,
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

func ParseMarkdown(source string, md goldmark.Markdown) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		panic(err)
	}

	return buf.String()
}

var highlightExtension = highlighting.NewHighlighting(
	highlighting.WithFormatOptions(InkwellChromaOptions...),
	highlighting.WithWrapperRenderer(func(w util.BufWriter, context highlighting.CodeBlockContext, entering bool) {
		if entering {
			w.WriteString(`<pre class="ink-code">`)
		} else {
			w.WriteString(`</pre>`)
		}
	}),
)
