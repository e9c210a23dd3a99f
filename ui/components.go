package ui

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

// CSRFFieldName is the form field name checked by the anti-forgery
// middleware of the host application.
const CSRFFieldName = "csrfmiddlewaretoken"

// CSRFInput returns a hidden input carrying the anti-forgery token.
// Forms posting to fragment routes include it so the host framework's
// CSRF protection passes:
//
//	<form method="post" x-target="comments">
//	  @ui.CSRFInput(token)
//	  ...
//	</form>
func CSRFInput(token string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<input type="hidden" name="`+CSRFFieldName+`" value="`+html.EscapeString(token)+`">`)
		return err
	})
}

// Encoder encodes a value to a string embeddable in markup. A state
// codec satisfies it.
type Encoder interface {
	Encode(v any) (string, error)
}

// StateInput returns a hidden input holding the codec-encoded value.
// Fragment handlers decode it back on the next request, so per-widget
// state survives without server-side sessions.
func StateInput(enc Encoder, name string, value any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		encoded, err := enc.Encode(value)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w,
			`<input type="hidden" name="`+html.EscapeString(name)+`" value="`+html.EscapeString(encoded)+`">`)
		return err
	})
}

// Target wraps children in the div fragment responses replace. The id
// matches what a handler passes to Markup.Target, so the swap finds its
// element.
func Target(id string, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="`+html.EscapeString(id)+`">`); err != nil {
			return err
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Text returns a component writing the escaped string.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html.EscapeString(s))
		return err
	})
}
