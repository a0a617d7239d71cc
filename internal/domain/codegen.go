package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

// Marker comments carried by generated statements.
const (
	generatedMarker  = "Code generated by JamJar Editor; DO NOT EDIT."
	lintMarker       = "eslint-disable"
	entityNameMarker = "EntityName:"
)

// expr is a node of the small expression tree generated code is built from.
type expr interface {
	render(b *strings.Builder)
}

// token is emitted verbatim: identifiers, keywords and numeric literals.
type token string

type stringLiteral string

type arrayLiteral []expr

type newExpr struct {
	class string
	args  []expr
}

type callExpr struct {
	callee string
	args   []expr
}

func (t token) render(b *strings.Builder) { b.WriteString(string(t)) }

func (s stringLiteral) render(b *strings.Builder) { b.WriteString(quoteJS(string(s))) }

func (a arrayLiteral) render(b *strings.Builder) {
	b.WriteByte('[')
	renderList(b, a)
	b.WriteByte(']')
}

func (n newExpr) render(b *strings.Builder) {
	b.WriteString("new ")
	b.WriteString(n.class)
	b.WriteByte('(')
	renderList(b, n.args)
	b.WriteByte(')')
}

func (c callExpr) render(b *strings.Builder) {
	b.WriteString(c.callee)
	b.WriteByte('(')
	renderList(b, c.args)
	b.WriteByte(')')
}

func renderList(b *strings.Builder, items []expr) {
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}

		item.render(b)
	}
}

// statement is one generated line with its leading marker comments.
type statement struct {
	comments []string
	code     string
}

func renderExpr(e expr) string {
	var b strings.Builder
	e.render(&b)

	return b.String()
}

// argumentsOf emits one positional argument per property; skipped optional
// properties become undefined so later arguments keep their position.
func argumentsOf(properties []m.Property) ([]expr, error) {
	args := make([]expr, 0, len(properties))

	for _, property := range properties {
		if property.Skipped() {
			args = append(args, token("undefined"))

			continue
		}

		arg, err := valueExpr(property.Value)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", property.Name, err)
		}

		args = append(args, arg)
	}

	return args, nil
}

func valueExpr(value m.Value) (expr, error) {
	switch data := value.Data.(type) {
	case m.Number:
		return token(formatNumber(float64(data))), nil
	case m.String:
		return stringLiteral(data), nil
	case m.Boolean:
		return token(strconv.FormatBool(bool(data))), nil
	case m.ValueList:
		items := make(arrayLiteral, 0, len(data.Items))

		for _, item := range data.Items {
			e, err := valueExpr(item)
			if err != nil {
				return nil, err
			}

			items = append(items, e)
		}

		return items, nil
	case m.Nested:
		args, err := argumentsOf(data.Properties)
		if err != nil {
			return nil, err
		}

		return newExpr{class: data.Name, args: args}, nil
	}

	return nil, fmt.Errorf("%w: value has no payload", m.ErrTypeMismatch)
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// quoteJS renders s as a double-quoted JavaScript string literal.
func quoteJS(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\u2028', '\u2029', utf8.RuneError:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)

				continue
			}

			b.WriteRune(r)
		}
	}

	b.WriteByte('"')

	return b.String()
}

// entityNamer disambiguates repeated entity names within one generation:
// the first "enemy" keeps its name, later ones become enemy0, enemy1, ...
// A candidate already handed out is skipped.
type entityNamer struct {
	counts map[string]int
	used   map[string]bool
}

func newEntityNamer() *entityNamer {
	return &entityNamer{counts: map[string]int{}, used: map[string]bool{}}
}

func (n *entityNamer) next(name string) string {
	candidate := name
	for n.used[candidate] {
		candidate = name + strconv.Itoa(n.counts[name])
		n.counts[name]++
	}

	n.used[candidate] = true

	return candidate
}

// entityStatements builds the body of the generated method.
func (g *sceneGenerator) entityStatements(entities []m.Entity, specs map[uint64]m.ComponentSpec) ([]statement, error) {
	namer := newEntityNamer()
	statements := []statement{}

	for i, entity := range entities {
		name := namer.next(entity.Name)

		declaration := statement{
			code: fmt.Sprintf("const %s: %s = %s", name, g.opts.EntityName,
				renderExpr(newExpr{class: g.opts.EntityName, args: []expr{token(g.opts.MessageBus)}})),
		}
		if i == 0 {
			declaration.comments = append(declaration.comments, generatedMarker, lintMarker)
		}

		declaration.comments = append(declaration.comments, entityNameMarker+name)
		statements = append(statements, declaration)

		for _, component := range entity.Components {
			spec, ok := specs[component.SpecID]
			if !ok {
				return nil, fmt.Errorf("%w: entity %s component %d spec %d", ErrMissingSpec, entity.Name, component.ID, component.SpecID)
			}

			args, err := argumentsOf(component.Properties)
			if err != nil {
				return nil, fmt.Errorf("entity %s component %s: %w", entity.Name, spec.Name, err)
			}

			add := callExpr{callee: name + ".Add", args: []expr{newExpr{class: spec.Name, args: args}}}
			statements = append(statements, statement{code: renderExpr(add)})
		}

		register := callExpr{callee: "this.AddEntity", args: []expr{token(name)}}
		statements = append(statements, statement{code: renderExpr(register)})
	}

	return statements, nil
}

// renderMethod prints the generated method. The first line carries no
// indentation; indent is the member indentation of the surrounding class.
func (g *sceneGenerator) renderMethod(statements []statement, indent string) string {
	inner := indent + indentUnit(indent)

	var b strings.Builder

	fmt.Fprintf(&b, "private %s(): void {\n", g.opts.MethodName)

	for _, stmt := range statements {
		for _, comment := range stmt.comments {
			fmt.Fprintf(&b, "%s/*%s*/\n", inner, comment)
		}

		fmt.Fprintf(&b, "%s%s;\n", inner, stmt.code)
	}

	b.WriteString(indent)
	b.WriteByte('}')

	return b.String()
}

func indentUnit(indent string) string {
	if strings.Contains(indent, "\t") {
		return "\t"
	}

	return "    "
}
