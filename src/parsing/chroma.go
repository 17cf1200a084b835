package parsing

import "github.com/alecthomas/chroma/formatters/html"

// Class-based output so that code block styling stays in the client's
// stylesheet instead of inline styles baked into stored HTML.
var InkwellChromaOptions = []html.Option{
	html.WithClasses(true),
	html.PreventSurroundingPre(true),
}
