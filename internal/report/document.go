package report

import (
	"errors"
	"fmt"
	"io"
)

// ErrOutOfOrder is returned when a document part is written before its
// predecessor or after the document was closed.
var ErrOutOfOrder = errors.New("report written out of order")

type docState int

const (
	stateNew docState = iota
	stateOpen
	stateProvenance
	stateSummary
	stateClosed
)

func (s docState) String() string {
	switch s {
	case stateNew:
		return "new"
	case stateOpen:
		return "open"
	case stateProvenance:
		return "provenance"
	case stateSummary:
		return "summary"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Document writes the HTML report in a single pass.
type Document struct {
	w        io.Writer
	sections []Section
	next     int
	state    docState
}

// NewDocument prepares a document that will contain sections in the given
// order. Nothing is written until Open.
func NewDocument(w io.Writer, sections []Section) *Document {
	return &Document{w: w, sections: append([]Section(nil), sections...)}
}

// Open writes the document head.
func (d *Document) Open(identifier string) error {
	if err := d.expect(stateNew, "open"); err != nil {
		return err
	}
	return d.render("open", identifier, stateOpen)
}

// WriteProvenance writes the input and tool information block.
func (d *Document) WriteProvenance(p Provenance) error {
	if err := d.expect(stateOpen, "provenance"); err != nil {
		return err
	}
	return d.render("provenance", p, stateProvenance)
}

// WriteSummary writes the aggregate statistics and the index of detailed
// sections.
func (d *Document) WriteSummary(v SummaryView) error {
	if err := d.expect(stateProvenance, "summary"); err != nil {
		return err
	}
	data := struct {
		SummaryView
		Index []Section
	}{v, d.sections}
	return d.render("summary", data, stateSummary)
}

// WriteSection writes the next declared section. t must match it.
func (d *Document) WriteSection(t Table) error {
	if err := d.expect(stateSummary, "section "+t.Anchor); err != nil {
		return err
	}
	if d.next >= len(d.sections) {
		return fmt.Errorf("%w: section %q after the last declared section", ErrOutOfOrder, t.Anchor)
	}
	if want := d.sections[d.next].Anchor; want != t.Anchor {
		return fmt.Errorf("%w: section %q written while %q is next", ErrOutOfOrder, t.Anchor, want)
	}
	if err := d.render("section", t, stateSummary); err != nil {
		return err
	}
	d.next++
	return nil
}

// Close writes the closing tags once every declared section is written.
func (d *Document) Close() error {
	if err := d.expect(stateSummary, "close"); err != nil {
		return err
	}
	if d.next != len(d.sections) {
		return fmt.Errorf("%w: close with %d of %d sections written", ErrOutOfOrder, d.next, len(d.sections))
	}
	return d.render("close", nil, stateClosed)
}

func (d *Document) expect(want docState, part string) error {
	if d.state != want {
		return fmt.Errorf("%w: %s in state %s", ErrOutOfOrder, part, d.state)
	}
	return nil
}

func (d *Document) render(name string, data any, next docState) error {
	if err := documentTmpl.ExecuteTemplate(d.w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	d.state = next
	return nil
}
