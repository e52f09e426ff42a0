package codegen

import (
	"strings"
)

const indentUnit = "    "

// printer accumulates source text at a current depth.
type printer struct {
	b     strings.Builder
	depth int
}

// param is one constructor argument. An empty name is positional.
type param struct {
	name  string
	value string
}

// line writes s at the current depth. Every line of a multi-line s is
// indented; continuation lines keep their own relative indentation.
func (p *printer) line(s string) {
	for _, l := range strings.Split(s, "\n") {
		if l == "" {
			p.b.WriteByte('\n')
			continue
		}
		p.b.WriteString(strings.Repeat(indentUnit, p.depth))
		p.b.WriteString(l)
		p.b.WriteByte('\n')
	}
}

// block writes head followed by an indented body and a closing brace.
func (p *printer) block(head string, body func()) {
	p.line(head + " {")
	p.depth++
	body()
	p.depth--
	p.line("}")
}

// call writes name(params) with an optional trailing lambda body. Calls with
// arguments put each argument on its own line.
func (p *printer) call(name string, params []param, body func()) {
	switch {
	case len(params) == 0 && body == nil:
		p.line(name + "()")
		return
	case len(params) == 0:
		p.block(name, body)
		return
	}

	p.line(name + "(")
	p.depth++
	for i, pa := range params {
		text := pa.value
		if pa.name != "" {
			text = pa.name + " = " + pa.value
		}
		if i < len(params)-1 {
			text += ","
		}
		p.line(text)
	}
	p.depth--
	if body == nil {
		p.line(")")
		return
	}
	p.block(")", body)
}

func (p *printer) String() string { return p.b.String() }
