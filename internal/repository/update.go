package repository

import (
	"github.com/Masterminds/squirrel"
)

// updateSet accumulates the columns supplied in a partial-update request.
// Callers must check Empty before building: an update touching zero columns
// is a caller fault and must be rejected before the store is involved.
type updateSet struct {
	b squirrel.UpdateBuilder
	n int
}

func newUpdateSet(table string) *updateSet {
	return &updateSet{b: squirrel.Update(table).PlaceholderFormat(squirrel.Dollar)}
}

func (u *updateSet) Set(column string, value any) {
	u.b = u.b.Set(column, value)
	u.n++
}

// SetExpr adds a raw SQL expression without counting it as a supplied field,
// for store-maintained columns like updated_at.
func (u *updateSet) SetExpr(column string, expr string) {
	u.b = u.b.Set(column, squirrel.Expr(expr))
}

func (u *updateSet) Empty() bool { return u.n == 0 }

func (u *updateSet) ByID(id int64) (string, []any, error) {
	return u.b.Where(squirrel.Eq{"id": id}).ToSql()
}
