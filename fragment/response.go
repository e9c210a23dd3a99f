package fragment

import (
	"bytes"
	"context"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// Response is the result of a fragment handler. It is a sealed union with
// two variants: *Markup (a component rendered to HTML) and *Raw (a
// prebuilt response passed through unrendered). A nil Response writes
// 204 No Content.
type Response interface {
	fragmentResponse()
}

// Markup is the rendered-component response variant. Built with HTML and
// configured with chained calls:
//
//	fragment.HTML(view).Target("comments-list").Status(http.StatusCreated)
type Markup struct {
	component templ.Component
	target    string
	status    int
}

// HTML returns a Markup response for the given component with status 200.
func HTML(c templ.Component) *Markup {
	return &Markup{component: c, status: http.StatusOK}
}

// Target wraps the rendered output in a container div with the given id,
// so the client can swap the fragment into that element.
func (m *Markup) Target(id string) *Markup {
	m.target = id
	return m
}

// Status overrides the response status code.
func (m *Markup) Status(code int) *Markup {
	m.status = code
	return m
}

func (m *Markup) fragmentResponse() {}

// Raw is the passthrough response variant: a prebuilt http.Handler
// written without rendering. Redirects and other full framework
// responses use this path.
type Raw struct {
	handler http.Handler
}

// Respond wraps a prebuilt handler as a passthrough response.
func Respond(h http.Handler) *Raw {
	return &Raw{handler: h}
}

// RespondFunc wraps a handler function as a passthrough response.
func RespondFunc(f func(w http.ResponseWriter, r *http.Request)) *Raw {
	return &Raw{handler: http.HandlerFunc(f)}
}

// Redirect returns a passthrough response that redirects to url with the
// given status code.
func Redirect(url string, code int) *Raw {
	return &Raw{handler: http.RedirectHandler(url, code)}
}

func (r *Raw) fragmentResponse() {}

// writeResponse writes a handler's Response to the wire. Markup is
// rendered to a buffer first so a render failure can still produce an
// error response instead of a torn body.
func (r *Router) writeResponse(w http.ResponseWriter, req *http.Request, resp Response) {
	switch v := resp.(type) {
	case nil:
		w.WriteHeader(http.StatusNoContent)

	case *Markup:
		if v == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		var buf bytes.Buffer
		if err := renderMarkup(req.Context(), &buf, v); err != nil {
			r.handleError(w, req, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(v.status)
		w.Write(buf.Bytes())

	case *Raw:
		if v == nil || v.handler == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		v.handler.ServeHTTP(w, req)

	default:
		r.log.Error().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Msg("fragment handler returned an unknown response variant")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderMarkup renders the component, applying the target wrap.
func renderMarkup(ctx context.Context, buf *bytes.Buffer, m *Markup) error {
	if m.target != "" {
		buf.WriteString(`<div id="`)
		buf.WriteString(html.EscapeString(m.target))
		buf.WriteString(`">`)
	}
	if m.component != nil {
		if err := m.component.Render(ctx, buf); err != nil {
			return err
		}
	}
	if m.target != "" {
		buf.WriteString(`</div>`)
	}
	return nil
}

// Render writes a component to the response with the text/html content
// type, using the request's context. This is the same rendering facility
// dispatch uses, so fragments written by hand stay consistent with
// routed ones.
func Render(w http.ResponseWriter, r *http.Request, c templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return c.Render(r.Context(), w)
}

// RenderString renders a component to markup text.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
