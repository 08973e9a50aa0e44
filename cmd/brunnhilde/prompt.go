package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"brunnhilde/internal/pipeline"
)

// promptPolicy asks the operator before continuing past a virus scan
// problem. Anything but an explicit yes aborts.
type promptPolicy struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptPolicy(in io.Reader, out io.Writer) *promptPolicy {
	return &promptPolicy{in: bufio.NewReader(in), out: out}
}

func (p *promptPolicy) OnCoverageShortfall(missing int) pipeline.Decision {
	return p.ask(fmt.Sprintf("The virus scan missed %d file(s). Continue anyway?", missing))
}

func (p *promptPolicy) OnInfectionFound(infected int) pipeline.Decision {
	return p.ask(fmt.Sprintf("The virus scan found %d infected file(s). Continue anyway?", infected))
}

func (p *promptPolicy) ask(question string) pipeline.Decision {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(p.out)
		return pipeline.Abort
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return pipeline.Continue
	default:
		return pipeline.Abort
	}
}

// choosePolicy continues unconditionally with --yes, prompts when stdin is
// a terminal, and aborts otherwise.
func choosePolicy(assumeYes bool, in io.Reader, out io.Writer) pipeline.Policy {
	if assumeYes {
		return pipeline.ContinuePolicy{}
	}
	if isTerminal(in) {
		return newPromptPolicy(in, out)
	}
	return pipeline.AbortPolicy{}
}
