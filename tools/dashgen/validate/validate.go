// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and may only reference known metric names.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings. Errors fail generation; warnings
// are reported only.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Dashboard validates every Prometheus target of every panel, including
// panels nested in rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result
	for _, p := range dash.Panels {
		if p.Panel != nil {
			checkPanel(&r, p.Panel, known)
		}
		if p.RowPanel != nil {
			for i := range p.RowPanel.Panels {
				checkPanel(&r, &p.RowPanel.Panels[i], known)
			}
		}
	}
	return r
}

func checkPanel(r *Result, p *dashboard.Panel, known map[string]bool) {
	title := "untitled"
	if p.Title != nil {
		title = *p.Title
	}
	if len(p.Targets) == 0 {
		r.warnf("panel %q has no targets", title)
		return
	}
	for _, t := range p.Targets {
		expr, err := targetExpr(t)
		if err != nil || expr == "" {
			r.warnf("panel %q has a target without a PromQL expression", title)
			continue
		}
		for _, msg := range Expr(expr, known) {
			r.errorf("panel %q: %s", title, msg)
		}
	}
}

// targetExpr reads the expression through the target's JSON form, which is
// the same for every datasource query type.
func targetExpr(t any) (string, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	var q struct {
		Expr string `json:"expr"`
	}
	if err := json.Unmarshal(raw, &q); err != nil {
		return "", err
	}
	return q.Expr, nil
}

// Exprs validates rule expressions keyed by rule name.
func Exprs(exprs map[string]string, known map[string]bool) Result {
	var r Result
	for name, expr := range exprs {
		for _, msg := range Expr(expr, known) {
			r.errorf("rule %q: %s", name, msg)
		}
	}
	return r
}

// Expr parses a PromQL expression and returns one message per problem.
func Expr(expr string, known map[string]bool) []string {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return []string{fmt.Sprintf("parsing %q: %v", expr, err)}
	}

	var problems []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !isKnown(vs.Name, known) {
			problems = append(problems, fmt.Sprintf("unknown metric %q", vs.Name))
		}
		return nil
	})
	return problems
}

// isKnown accepts histogram series by their base metric name.
func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
