package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Build exposes gomponents nodes as a templ.Component. Nodes are built at
// render time, when the request context (locale, nonce, CSRF token) is known.
func Build(fn func(ctx context.Context) g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return fn(ctx).Render(w)
	})
}
