// Package render turns parameter sets and parse failures into human-readable text.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/toejough/chatargs"
)

// Renderer formats usage lines, parameter listings and failures.
type Renderer struct {
	Styles Styles
}

// New returns a Renderer using styles.
func New(styles Styles) *Renderer {
	return &Renderer{Styles: styles}
}

// Failure describes err for the person who typed the command. Parse failures
// get a message per kind; other errors are shown as they are.
func (r *Renderer) Failure(err error) string {
	if err == nil {
		return ""
	}

	label := r.Styles.Error.Render("Error:")

	var perr *chatargs.ParseError
	if !errors.As(err, &perr) {
		return label + " " + err.Error()
	}

	var msg string

	switch perr.Kind {
	case chatargs.FailureEmpty:
		msg = fmt.Sprintf("%s needs a value.", r.param(perr.Param()))
	case chatargs.FailureInvalid:
		msg = fmt.Sprintf("%q is not a valid value for %s.", perr.Raw, r.param(perr.Param()))
	case chatargs.FailureInsufficient:
		p := perr.Param()
		msg = fmt.Sprintf("%s needs at least %d values, got %d.",
			r.param(p), p.Cardinality().Min, perr.Count)
	case chatargs.FailureMissing:
		names := make([]string, 0, len(perr.Params))
		for _, p := range perr.Params {
			names = append(names, r.param(p))
		}

		noun := "argument"
		if len(names) > 1 {
			noun = "arguments"
		}

		msg = fmt.Sprintf("Missing required %s: %s.", noun, strings.Join(names, ", "))
	default:
		msg = perr.Error()
	}

	return label + " " + msg
}

// Parameters lists every parameter of set with its aliases and description,
// one per line, aligned on the description column.
func (r *Renderer) Parameters(set *chatargs.Set) string {
	params := paramsOf(set)
	if len(params) == 0 {
		return ""
	}

	heads := make([]string, len(params))
	width := 0

	for i, p := range params {
		heads[i] = r.paramHead(p)
		width = max(width, lipgloss.Width(heads[i]))
	}

	var b strings.Builder

	for i, p := range params {
		pad := strings.Repeat(" ", width-lipgloss.Width(heads[i]))
		fmt.Fprintf(&b, "  %s%s  %s\n", heads[i], pad, p.Description())
	}

	return b.String()
}

// Usage renders a one-line synopsis such as
// "remind <when> <message>... [--tags <tags>...] [--silent]".
// Positionals come first, in declaration order, then named parameters.
func (r *Renderer) Usage(path string, set *chatargs.Set) string {
	parts := []string{r.Styles.Header.Render("Usage:"), r.Styles.Name.Render(path)}
	params := paramsOf(set)

	for _, p := range params {
		if p.Kind() == chatargs.KindPositional {
			parts = append(parts, r.usageItem(p))
		}
	}

	for _, p := range params {
		if p.Kind() != chatargs.KindPositional {
			parts = append(parts, r.usageItem(p))
		}
	}

	return strings.Join(parts, " ")
}

func (r *Renderer) param(p *chatargs.Param) string {
	return r.Styles.Name.Render(p.Display())
}

func (r *Renderer) paramHead(p *chatargs.Param) string {
	head := r.Styles.Name.Render(p.Display())
	if p.Short() != "" {
		head = r.Styles.Name.Render("-"+p.Short()) + ", " + head
	}

	if p.Kind() == chatargs.KindOption {
		head += " " + r.placeholder(p)
	}

	return head
}

func (r *Renderer) placeholder(p *chatargs.Param) string {
	text := "<" + p.Name() + ">"
	if p.MultiValued() {
		text += "..."
	}

	return r.Styles.Placeholder.Render(text)
}

func (r *Renderer) usageItem(p *chatargs.Param) string {
	var item string

	switch p.Kind() {
	case chatargs.KindFlag:
		item = r.Styles.Name.Render(p.Display())
	case chatargs.KindOption:
		item = r.Styles.Name.Render(p.Display()) + " " + r.placeholder(p)
	default:
		item = r.placeholder(p)
	}

	if p.Optional() {
		return "[" + item + "]"
	}

	return item
}

func paramsOf(set *chatargs.Set) []*chatargs.Param {
	if set == nil {
		return nil
	}

	return set.Params()
}
