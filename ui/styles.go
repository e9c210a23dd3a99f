package ui

import (
	"context"
	"embed"
	"html"
	"io"
	"io/fs"

	"github.com/a-h/templ"
)

// StylesheetPath is the conventional mount path for the default
// stylesheet. Applications are free to serve it elsewhere and pass that
// href to StylesheetLink.
const StylesheetPath = "/static/hue/hue.css"

//go:embed static
var embeddedStyles embed.FS

// Styles is the embedded default stylesheet, rooted so hue.css sits at
// the top level. Serve it with the static files handler:
//
//	assets, err := fragmenthandlers.StaticFilesHandler(fragmenthandlers.StaticFilesConfig{
//	    FS:     ui.Styles,
//	    MaxAge: 24 * time.Hour,
//	})
//	mux.Handle("/static/hue/", http.StripPrefix("/static/hue/", assets))
var Styles = mustSub(embeddedStyles, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// StylesheetLink returns the link tag for a stylesheet href:
//
//	@ui.StylesheetLink(ui.StylesheetPath)
func StylesheetLink(href string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<link rel="stylesheet" href="`+html.EscapeString(href)+`">`)
		return err
	})
}
