package appsheet

import "strings"

// Expr condición del Selector de AppSheet. Se construye con Eq, And, Or e In;
// los valores siempre se escapan, nunca se interpolan crudos.
type Expr interface {
	render(b *strings.Builder)
}

type eqExpr struct {
	field string
	value string
}

func (e eqExpr) render(b *strings.Builder) {
	b.WriteString(column(e.field))
	b.WriteString(" = ")
	b.WriteString(quote(e.value))
}

type logicExpr struct {
	op    string
	terms []Expr
}

func (e logicExpr) render(b *strings.Builder) {
	if len(e.terms) == 1 {
		e.terms[0].render(b)
		return
	}
	b.WriteString(e.op)
	b.WriteByte('(')
	for i, t := range e.terms {
		if i > 0 {
			b.WriteString(", ")
		}
		t.render(b)
	}
	b.WriteByte(')')
}

type literalExpr string

func (e literalExpr) render(b *strings.Builder) { b.WriteString(string(e)) }

// Eq [field] = "value".
func Eq(field, value string) Expr {
	return eqExpr{field: field, value: value}
}

// And conjunción; ignora términos nil.
func And(terms ...Expr) Expr {
	return logic("AND", terms)
}

// Or disyunción; ignora términos nil.
func Or(terms ...Expr) Expr {
	return logic("OR", terms)
}

// In [field] igual a cualquiera de values (sin repetidos). Sin valores es FALSE.
func In(field string, values []string) Expr {
	seen := make(map[string]bool, len(values))
	terms := make([]Expr, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		terms = append(terms, Eq(field, v))
	}
	return Or(terms...)
}

func logic(op string, terms []Expr) Expr {
	kept := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if t != nil {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		if op == "AND" {
			return literalExpr("TRUE")
		}
		return literalExpr("FALSE")
	}
	return logicExpr{op: op, terms: kept}
}

// Render texto de la condición.
func Render(e Expr) string {
	var b strings.Builder
	e.render(&b)
	return b.String()
}

// Selector Filter("table", condición) para Properties.Selector.
func Selector(table string, e Expr) string {
	var b strings.Builder
	b.WriteString("Filter(")
	b.WriteString(quote(table))
	b.WriteString(", ")
	e.render(&b)
	b.WriteByte(')')
	return b.String()
}

// quote literal de texto; las comillas internas se duplican.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// column referencia [campo]; los corchetes dentro del nombre se eliminan.
func column(name string) string {
	name = strings.NewReplacer("[", "", "]", "").Replace(strings.TrimSpace(name))
	return "[" + name + "]"
}
