// Package templates holds the dashboard's templ components.
//
//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

var esc = templ.EscapeString[string]

// htmlWriter keeps the first write error so components stay linear.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (hw *htmlWriter) printf(format string, args ...any) {
	if hw.err != nil {
		return
	}
	_, hw.err = fmt.Fprintf(hw.w, format, args...)
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// render writes a child component; nil children are skipped.
func (hw *htmlWriter) render(c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(hw.ctx, hw.w)
}

func component(fn func(hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		fn(hw)
		return hw.err
	})
}

// Stack renders components one after another.
func Stack(children ...templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		for _, c := range children {
			hw.render(c)
		}
	})
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(esc(s))
	})
}

// Muted renders secondary text in a span.
func Muted(s string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<span class="text-muted">%s</span>`, esc(s))
	})
}

// Link renders an anchor.
func Link(href, label string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<a href="%s" class="link">%s</a>`, esc(href), esc(label))
	})
}

// Icon renders a named glyph placeholder styled by app.css.
func Icon(name string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<span class="icon icon-%s" aria-hidden="true"></span>`, esc(name))
	})
}

// Region wraps c in a container that later responses can replace.
func Region(id string, c templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<div id="%s">`, esc(id))
		hw.render(c)
		hw.raw(`</div>`)
	})
}

// OutOfBand renders c as a replacement for Region id alongside the main
// HTMX response.
func OutOfBand(id string, c templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<div id="%s" hx-swap-oob="true">`, esc(id))
		hw.render(c)
		hw.raw(`</div>`)
	})
}

// Columns lays children out side by side on wide screens.
func Columns(children ...templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="columns">`)
		for _, c := range children {
			hw.raw(`<div>`)
			hw.render(c)
			hw.raw(`</div>`)
		}
		hw.raw(`</div>`)
	})
}
