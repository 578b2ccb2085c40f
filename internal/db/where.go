package db

import "strings"

// Where accumulates (predicate, parameter) pairs. Predicates carry '?'
// placeholders; values travel separately in Args so nothing is ever
// concatenated into the statement.
type Where struct {
	predicates []string
	args       []any
}

// NewWhere starts a clause with optional fixed predicates that take no args.
func NewWhere(fixed ...string) *Where {
	return &Where{predicates: append([]string(nil), fixed...)}
}

// Add appends a predicate and the values bound to its placeholders.
func (w *Where) Add(predicate string, args ...any) *Where {
	w.predicates = append(w.predicates, predicate)
	w.args = append(w.args, args...)
	return w
}

// AddIf appends the predicate only when cond holds.
func (w *Where) AddIf(cond bool, predicate string, args ...any) *Where {
	if cond {
		w.Add(predicate, args...)
	}
	return w
}

// Len returns the number of predicates.
func (w *Where) Len() int { return len(w.predicates) }

// SQL returns the predicates joined with AND, without the WHERE keyword.
func (w *Where) SQL() string {
	if len(w.predicates) == 0 {
		return "1 = 1"
	}
	return strings.Join(w.predicates, " AND ")
}

// Args returns the bound values in placeholder order.
func (w *Where) Args() []any {
	out := make([]any, len(w.args))
	copy(out, w.args)
	return out
}
