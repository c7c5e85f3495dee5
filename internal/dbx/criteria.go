package dbx

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/criteria"
)

// Placeholder names used for paging.
const (
	LimitParam  = "limit"
	OffsetParam = "offset"
)

// ApplyCriteria appends the WHERE, ORDER BY and LIMIT/OFFSET clauses for c
// to base, in that order. OFFSET is only emitted together with LIMIT.
func ApplyCriteria(base string, c criteria.Criteria) string {
	query := base

	if c.HasFilter() {
		query += " WHERE " + c.Filter().Predicate()
	}

	order := c.Order()
	switch order.Direction() {
	case criteria.Ascending:
		query += fmt.Sprintf(` ORDER BY "%s" ASC`, order.Column())
	case criteria.Descending:
		query += fmt.Sprintf(` ORDER BY "%s" DESC`, order.Column())
	}

	if _, ok := c.Limit(); ok {
		query += " LIMIT :" + LimitParam
		if _, ok := c.Offset(); ok {
			query += " OFFSET :" + OffsetParam
		}
	}

	return query
}

// BindCriteria returns the values for every placeholder ApplyCriteria
// emits for c: filter parameters, then limit, then offset, under the same
// presence rules.
func BindCriteria(c criteria.Criteria) map[string]any {
	named := make(map[string]any)

	if c.HasFilter() {
		for k, v := range c.Filter().Parameters() {
			named[k] = v
		}
	}

	if limit, ok := c.Limit(); ok {
		named[LimitParam] = limit
		if offset, ok := c.Offset(); ok {
			named[OffsetParam] = offset
		}
	}

	return named
}

// BuildCriteria applies c to base and compiles the result for d.
func BuildCriteria(d Dialect, base string, c criteria.Criteria) (string, []any, error) {
	return d.Compile(ApplyCriteria(base, c), BindCriteria(c))
}

// QueryCriteria runs base filtered, ordered and paged by c.
func QueryCriteria(ctx context.Context, db DBTX, d Dialect, base string, c criteria.Criteria) (*sql.Rows, error) {
	query, args, err := BuildCriteria(d, base, c)
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, StoreFailure(err)
	}
	return rows, nil
}

// DeleteCriteria deletes the rows of table matched by c's filter and returns
// the number of removed rows. Order and paging are ignored. A criteria
// without a filter is rejected with common.ErrNoFilterForDelete before the
// store is touched.
func DeleteCriteria(ctx context.Context, db DBTX, d Dialect, table string, c criteria.Criteria) (int64, error) {
	if !c.HasFilter() {
		return 0, common.ErrNoFilterForDelete
	}

	f := c.Filter()
	query, args, err := d.Compile(fmt.Sprintf("DELETE FROM %s WHERE %s", table, f.Predicate()), f.Parameters())
	if err != nil {
		return 0, fmt.Errorf("building query: %w", err)
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, StoreFailure(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, StoreFailure(err)
	}
	return n, nil
}
