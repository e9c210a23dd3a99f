// Package ui provides small building blocks for fragment markup: form
// inputs that carry tokens and encoded state, the target wrapper div,
// a typed Alpine.js attribute set, and the embedded default stylesheet.
//
// Components are plain templ components built with templ.ComponentFunc,
// so they compose with generated templates and render through the same
// pipeline as everything else:
//
//	form := ui.Target("comment-form",
//	    ui.CSRFInput(token),
//	    ui.StateInput(codec, "state", formState),
//	)
//
// Alpine attributes are declared as a struct and rendered into
// templ.Attributes, keeping directive names out of string literals:
//
//	attrs := ui.Alpine{
//	    Target: "comments",
//	    Merge:  ui.MergeAppend,
//	    On:     map[string]string{"click.outside": "open = false"},
//	}.Attrs()
package ui
