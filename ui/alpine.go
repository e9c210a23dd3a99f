package ui

import (
	"encoding/json"

	"github.com/a-h/templ"
)

// Merge strategies understood by Alpine AJAX's x-merge directive.
const (
	MergeBefore  = "before"
	MergeReplace = "replace"
	MergeUpdate  = "update"
	MergePrepend = "prepend"
	MergeAppend  = "append"
	MergeAfter   = "after"
)

// Alpine declares Alpine.js and Alpine AJAX attributes as struct fields
// instead of string literals scattered through templates. Attrs renders
// the populated fields into templ.Attributes with canonical directive
// names: map keys carry the directive argument and modifiers in dotted
// form, so On["click.outside"] becomes x-on:click.outside.
//
// Zero fields render nothing, making the zero value an empty attribute
// set.
type Alpine struct {
	// Show is the x-show expression.
	Show string

	// Data is the x-data expression, typically an object literal.
	Data string

	// Init is the x-init expression.
	Init string

	// On maps event names to handler expressions. Keys may carry
	// modifiers: "click.outside" renders as x-on:click.outside.
	On map[string]string

	// Bind maps attribute names to bound expressions:
	// "class" renders as x-bind:class.
	Bind map[string]string

	// Transition maps transition stages to classes:
	// "enter.start" renders as x-transition:enter.start.
	Transition map[string]string

	// Target names the element replaced with the fragment response.
	Target string

	// TargetMods maps x-target modifiers to their targets:
	// "422" renders as x-target.422, "back" as x-target.back.
	TargetMods map[string]string

	// Merge selects how the fragment is merged into the target.
	// One of the Merge constants; Alpine AJAX defaults to replace.
	Merge string

	// Headers is sent as the x-headers JSON object on fragment
	// requests.
	Headers map[string]string

	// Autofocus restores focus to the first autofocusable element
	// after a merge (x-autofocus).
	Autofocus bool

	// Sync marks the element for synchronization on every fragment
	// response (x-sync).
	Sync bool

	// FormNoAjax opts a form out of AJAX submission (formnoajax).
	FormNoAjax bool

	// Ajax maps Alpine AJAX lifecycle events to handler expressions:
	// "before" renders as @ajax.before.
	Ajax map[string]string
}

// Attrs renders the populated fields into a templ.Attributes map.
// Boolean fields render as bare attributes, Headers as a JSON object
// with keys in sorted order.
func (a Alpine) Attrs() templ.Attributes {
	attrs := templ.Attributes{}

	if a.Show != "" {
		attrs["x-show"] = a.Show
	}
	if a.Data != "" {
		attrs["x-data"] = a.Data
	}
	if a.Init != "" {
		attrs["x-init"] = a.Init
	}

	for event, expr := range a.On {
		attrs["x-on:"+event] = expr
	}
	for name, expr := range a.Bind {
		attrs["x-bind:"+name] = expr
	}
	for stage, classes := range a.Transition {
		attrs["x-transition:"+stage] = classes
	}

	if a.Target != "" {
		attrs["x-target"] = a.Target
	}
	for mod, target := range a.TargetMods {
		attrs["x-target."+mod] = target
	}

	if a.Merge != "" {
		attrs["x-merge"] = a.Merge
	}

	if len(a.Headers) > 0 {
		// Map keys marshal in sorted order, so the attribute value is
		// stable across renders.
		data, _ := json.Marshal(a.Headers)
		attrs["x-headers"] = string(data)
	}

	if a.Autofocus {
		attrs["x-autofocus"] = true
	}
	if a.Sync {
		attrs["x-sync"] = true
	}
	if a.FormNoAjax {
		attrs["formnoajax"] = true
	}

	for event, expr := range a.Ajax {
		attrs["@ajax."+event] = expr
	}

	return attrs
}
