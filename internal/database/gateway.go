package database

import (
	"context"

	"gorm.io/gorm"
)

// Querier issues parameterized statements. Every value that reaches SQL text
// must travel through args; placeholders are written as '?' and rebound by
// the dialect ($n on postgres).
type Querier interface {
	// Select scans the result rows into dest. A *[]map[string]any dest
	// receives one mapping per row in result order.
	Select(ctx context.Context, dest any, query string, args ...any) error
	// Exec runs a write and reports how many rows it touched.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// Gateway is a Querier that can also open a transactional scope.
type Gateway interface {
	Querier
	// InTx runs fn inside a transaction. The transaction commits when fn
	// returns nil and rolls back on an error or a panic; the connection is
	// released on every path.
	InTx(ctx context.Context, fn func(q Querier) error) error
}

type gormGateway struct {
	db *gorm.DB
}

// NewGateway returns a Gateway backed by db.
func NewGateway(db *gorm.DB) Gateway {
	return &gormGateway{db: db}
}

func (g *gormGateway) Select(ctx context.Context, dest any, query string, args ...any) error {
	return g.db.WithContext(ctx).Raw(query, args...).Scan(dest).Error
}

func (g *gormGateway) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res := g.db.WithContext(ctx).Exec(query, args...)
	return res.RowsAffected, res.Error
}

func (g *gormGateway) InTx(ctx context.Context, fn func(q Querier) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormGateway{db: tx})
	})
}
