package tags

import (
	"strings"

	"bpr/internal/domain"
)

// Filter holds the tag expressions for a run. The expressions are opaque
// to the runner: they are handed to behave verbatim, which owns their
// semantics. A Filter is built once and shared read-only by all workers.
type Filter struct {
	exprs []string
}

// Parse builds a Filter from raw tag expressions (the values of repeated
// --tags flags). An empty input yields a filter that matches everything.
func Parse(exprs []string) (Filter, error) {
	out := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			return Filter{}, &domain.ConfigError{Field: "tags", Reason: "contains an empty expression"}
		}
		out = append(out, expr)
	}
	return Filter{exprs: out}, nil
}

// Empty reports whether the filter places no restriction on scenarios.
func (f Filter) Empty() bool {
	return len(f.exprs) == 0
}

// Expressions returns the raw expressions in the order given.
func (f Filter) Expressions() []string {
	out := make([]string, len(f.exprs))
	copy(out, f.exprs)
	return out
}

// CommandArgs renders the filter back into behave command-line arguments,
// one --tags=<expr> per expression.
func (f Filter) CommandArgs() []string {
	args := make([]string, 0, len(f.exprs))
	for _, expr := range f.exprs {
		args = append(args, "--tags="+expr)
	}
	return args
}

// String returns the expressions joined for log output.
func (f Filter) String() string {
	if f.Empty() {
		return "<all scenarios>"
	}
	return strings.Join(f.exprs, " ")
}
