package database

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// BunAdapter adapts Bun to the Database interface, demonstrating that the
// abstraction works with a second ORM.
type BunAdapter struct {
	db   bun.IDB
	root *bun.DB
}

// NewBunAdapter creates a new Bun adapter.
func NewBunAdapter(db *bun.DB) *BunAdapter {
	return &BunAdapter{db: db, root: db}
}

func (b *BunAdapter) NewSelect() SelectQuery {
	return &BunSelectQuery{query: b.db.NewSelect()}
}

func (b *BunAdapter) NewInsert() InsertQuery {
	return &BunInsertQuery{query: b.db.NewInsert()}
}

func (b *BunAdapter) NewUpdate() UpdateQuery {
	return &BunUpdateQuery{query: b.db.NewUpdate()}
}

func (b *BunAdapter) NewDelete() DeleteQuery {
	return &BunDeleteQuery{query: b.db.NewDelete()}
}

func (b *BunAdapter) Exec(ctx context.Context, query string, args ...interface{}) (Result, error) {
	result, err := b.db.ExecContext(ctx, query, args...)
	return &BunResult{result: result}, err
}

func (b *BunAdapter) Query(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return b.db.NewRaw(query, args...).Scan(ctx, dest)
}

func (b *BunAdapter) RunInTransaction(ctx context.Context, fn func(Database) error) error {
	if b.root == nil {
		// Already inside a transaction; run in the same one.
		return fn(b)
	}
	return b.root.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(&BunAdapter{db: tx})
	})
}

// BunSelectQuery implements SelectQuery for Bun.
type BunSelectQuery struct {
	query *bun.SelectQuery
}

func (b *BunSelectQuery) Model(model interface{}) SelectQuery {
	b.query = b.query.Model(model)
	return b
}

func (b *BunSelectQuery) Table(table string) SelectQuery {
	b.query = b.query.Table(table)
	return b
}

func (b *BunSelectQuery) Column(columns ...string) SelectQuery {
	b.query = b.query.Column(columns...)
	return b
}

func (b *BunSelectQuery) Where(query string, args ...interface{}) SelectQuery {
	b.query = b.query.Where(query, args...)
	return b
}

func (b *BunSelectQuery) WhereOr(query string, args ...interface{}) SelectQuery {
	b.query = b.query.WhereOr(query, args...)
	return b
}

func (b *BunSelectQuery) Order(order string) SelectQuery {
	b.query = b.query.Order(order)
	return b
}

func (b *BunSelectQuery) Limit(n int) SelectQuery {
	b.query = b.query.Limit(n)
	return b
}

func (b *BunSelectQuery) Offset(n int) SelectQuery {
	b.query = b.query.Offset(n)
	return b
}

func (b *BunSelectQuery) Count(ctx context.Context) (int, error) {
	return b.query.Count(ctx)
}

func (b *BunSelectQuery) Scan(ctx context.Context, dest interface{}) error {
	return b.query.Scan(ctx, dest)
}

// BunInsertQuery implements InsertQuery for Bun.
type BunInsertQuery struct {
	query *bun.InsertQuery
}

func (b *BunInsertQuery) Model(model interface{}) InsertQuery {
	b.query = b.query.Model(model)
	return b
}

func (b *BunInsertQuery) Table(table string) InsertQuery {
	b.query = b.query.Table(table)
	return b
}

func (b *BunInsertQuery) Exec(ctx context.Context) (Result, error) {
	result, err := b.query.Exec(ctx)
	return &BunResult{result: result}, err
}

// BunUpdateQuery implements UpdateQuery for Bun.
type BunUpdateQuery struct {
	query *bun.UpdateQuery
}

func (b *BunUpdateQuery) Model(model interface{}) UpdateQuery {
	b.query = b.query.Model(model)
	return b
}

func (b *BunUpdateQuery) Table(table string) UpdateQuery {
	b.query = b.query.Table(table)
	return b
}

func (b *BunUpdateQuery) SetMap(values map[string]interface{}) UpdateQuery {
	for column, value := range values {
		b.query = b.query.Set("? = ?", bun.Ident(column), value)
	}
	return b
}

func (b *BunUpdateQuery) Where(query string, args ...interface{}) UpdateQuery {
	b.query = b.query.Where(query, args...)
	return b
}

func (b *BunUpdateQuery) Exec(ctx context.Context) (Result, error) {
	result, err := b.query.Exec(ctx)
	return &BunResult{result: result}, err
}

// BunDeleteQuery implements DeleteQuery for Bun.
type BunDeleteQuery struct {
	query *bun.DeleteQuery
}

func (b *BunDeleteQuery) Model(model interface{}) DeleteQuery {
	b.query = b.query.Model(model)
	return b
}

func (b *BunDeleteQuery) Table(table string) DeleteQuery {
	b.query = b.query.Table(table)
	return b
}

func (b *BunDeleteQuery) Where(query string, args ...interface{}) DeleteQuery {
	b.query = b.query.Where(query, args...)
	return b
}

func (b *BunDeleteQuery) Exec(ctx context.Context) (Result, error) {
	result, err := b.query.Exec(ctx)
	return &BunResult{result: result}, err
}

// BunResult implements Result for Bun.
type BunResult struct {
	result sql.Result
}

func (b *BunResult) RowsAffected() int64 {
	if b.result == nil {
		return 0
	}
	n, err := b.result.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
