package activerecord

import (
	"context"

	"github.com/jay-hwang/active-record/clause"
)

// Where records matching every criterion by equality, empty (never nil) when none match.
// Each criterion binds its value as exactly one var, in the order given; no criteria
// selects every row. Criteria built with Map bind in sorted column order, not the
// map's literal order.
func (m *Model) Where(ctx context.Context, criteria ...Field) ([]*Record, error) {
	table := m.TableName()
	stmt := &Statement{Table: table}

	clauses := []clause.Interface{clause.Select{}, clause.From{Tables: []clause.Table{{Name: table}}}}
	if len(criteria) > 0 {
		exprs := make([]clause.Expression, 0, len(criteria))
		for _, criterion := range criteria {
			exprs = append(exprs, clause.Eq{Column: criterion.Column, Value: criterion.Value})
		}
		clauses = append(clauses, clause.Where{Exprs: exprs})
	}

	return m.query(ctx, stmt.Build(clauses...))
}
