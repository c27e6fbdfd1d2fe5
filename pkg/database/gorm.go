package database

import (
	"context"

	"gorm.io/gorm"
)

// GormAdapter adapts GORM to the Database interface.
type GormAdapter struct {
	db *gorm.DB
}

// NewGormAdapter creates a new GORM adapter.
func NewGormAdapter(db *gorm.DB) *GormAdapter {
	return &GormAdapter{db: db}
}

func (g *GormAdapter) NewSelect() SelectQuery {
	return &GormSelectQuery{db: g.db}
}

func (g *GormAdapter) NewInsert() InsertQuery {
	return &GormInsertQuery{db: g.db}
}

func (g *GormAdapter) NewUpdate() UpdateQuery {
	return &GormUpdateQuery{db: g.db}
}

func (g *GormAdapter) NewDelete() DeleteQuery {
	return &GormDeleteQuery{db: g.db}
}

func (g *GormAdapter) Exec(ctx context.Context, query string, args ...interface{}) (Result, error) {
	result := g.db.WithContext(ctx).Exec(query, args...)
	return &GormResult{result: result}, result.Error
}

func (g *GormAdapter) Query(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return g.db.WithContext(ctx).Raw(query, args...).Find(dest).Error
}

func (g *GormAdapter) RunInTransaction(ctx context.Context, fn func(Database) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormAdapter{db: tx})
	})
}

// GormSelectQuery implements SelectQuery for GORM.
type GormSelectQuery struct {
	db *gorm.DB
}

func (g *GormSelectQuery) Model(model interface{}) SelectQuery {
	g.db = g.db.Model(model)
	return g
}

func (g *GormSelectQuery) Table(table string) SelectQuery {
	g.db = g.db.Table(table)
	return g
}

func (g *GormSelectQuery) Column(columns ...string) SelectQuery {
	g.db = g.db.Select(columns)
	return g
}

func (g *GormSelectQuery) Where(query string, args ...interface{}) SelectQuery {
	g.db = g.db.Where(query, args...)
	return g
}

func (g *GormSelectQuery) WhereOr(query string, args ...interface{}) SelectQuery {
	g.db = g.db.Or(query, args...)
	return g
}

func (g *GormSelectQuery) Order(order string) SelectQuery {
	g.db = g.db.Order(order)
	return g
}

func (g *GormSelectQuery) Limit(n int) SelectQuery {
	g.db = g.db.Limit(n)
	return g
}

func (g *GormSelectQuery) Offset(n int) SelectQuery {
	g.db = g.db.Offset(n)
	return g
}

func (g *GormSelectQuery) Count(ctx context.Context) (int, error) {
	var count int64
	err := g.db.WithContext(ctx).Count(&count).Error
	return int(count), err
}

func (g *GormSelectQuery) Scan(ctx context.Context, dest interface{}) error {
	return g.db.WithContext(ctx).Find(dest).Error
}

// GormInsertQuery implements InsertQuery for GORM.
type GormInsertQuery struct {
	db    *gorm.DB
	model interface{}
}

func (g *GormInsertQuery) Model(model interface{}) InsertQuery {
	g.model = model
	return g
}

func (g *GormInsertQuery) Table(table string) InsertQuery {
	g.db = g.db.Table(table)
	return g
}

func (g *GormInsertQuery) Exec(ctx context.Context) (Result, error) {
	result := g.db.WithContext(ctx).Create(g.model)
	return &GormResult{result: result}, result.Error
}

// GormUpdateQuery implements UpdateQuery for GORM.
type GormUpdateQuery struct {
	db      *gorm.DB
	updates map[string]interface{}
}

func (g *GormUpdateQuery) Model(model interface{}) UpdateQuery {
	g.db = g.db.Model(model)
	return g
}

func (g *GormUpdateQuery) Table(table string) UpdateQuery {
	g.db = g.db.Table(table)
	return g
}

func (g *GormUpdateQuery) SetMap(values map[string]interface{}) UpdateQuery {
	g.updates = values
	return g
}

func (g *GormUpdateQuery) Where(query string, args ...interface{}) UpdateQuery {
	g.db = g.db.Where(query, args...)
	return g
}

func (g *GormUpdateQuery) Exec(ctx context.Context) (Result, error) {
	result := g.db.WithContext(ctx).Updates(g.updates)
	return &GormResult{result: result}, result.Error
}

// GormDeleteQuery implements DeleteQuery for GORM.
type GormDeleteQuery struct {
	db    *gorm.DB
	model interface{}
}

func (g *GormDeleteQuery) Model(model interface{}) DeleteQuery {
	g.model = model
	return g
}

func (g *GormDeleteQuery) Table(table string) DeleteQuery {
	g.db = g.db.Table(table)
	return g
}

func (g *GormDeleteQuery) Where(query string, args ...interface{}) DeleteQuery {
	g.db = g.db.Where(query, args...)
	return g
}

func (g *GormDeleteQuery) Exec(ctx context.Context) (Result, error) {
	result := g.db.WithContext(ctx).Delete(g.model)
	return &GormResult{result: result}, result.Error
}

// GormResult implements Result for GORM.
type GormResult struct {
	result *gorm.DB
}

func (g *GormResult) RowsAffected() int64 {
	return g.result.RowsAffected
}
