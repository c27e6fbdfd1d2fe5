// Package database abstracts the ORM behind small query-builder interfaces
// so the listing engine is not tied to one library. GORM is the primary
// adapter; the Bun adapter proves the abstraction holds for a second ORM.
package database

import "context"

// Database creates query builders and runs raw statements.
type Database interface {
	NewSelect() SelectQuery
	NewInsert() InsertQuery
	NewUpdate() UpdateQuery
	NewDelete() DeleteQuery

	Exec(ctx context.Context, query string, args ...interface{}) (Result, error)
	Query(ctx context.Context, dest interface{}, query string, args ...interface{}) error

	RunInTransaction(ctx context.Context, fn func(Database) error) error
}

// SelectQuery builds a SELECT incrementally. Implementations return the
// receiver for chaining.
type SelectQuery interface {
	Model(model interface{}) SelectQuery
	Table(table string) SelectQuery
	Column(columns ...string) SelectQuery
	Where(query string, args ...interface{}) SelectQuery
	WhereOr(query string, args ...interface{}) SelectQuery
	Order(order string) SelectQuery
	Limit(n int) SelectQuery
	Offset(n int) SelectQuery

	Count(ctx context.Context) (int, error)
	Scan(ctx context.Context, dest interface{}) error
}

type InsertQuery interface {
	Model(model interface{}) InsertQuery
	Table(table string) InsertQuery
	Exec(ctx context.Context) (Result, error)
}

type UpdateQuery interface {
	Model(model interface{}) UpdateQuery
	Table(table string) UpdateQuery
	SetMap(values map[string]interface{}) UpdateQuery
	Where(query string, args ...interface{}) UpdateQuery
	Exec(ctx context.Context) (Result, error)
}

type DeleteQuery interface {
	Model(model interface{}) DeleteQuery
	Table(table string) DeleteQuery
	Where(query string, args ...interface{}) DeleteQuery
	Exec(ctx context.Context) (Result, error)
}

// Result reports the outcome of a write.
type Result interface {
	RowsAffected() int64
}
