package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle. The concrete type is infra-defined
// (pgx.Tx for Postgres); repositories must accept NoTX for the
// non-transactional path.
type Tx interface{}

var NoTX interface{}

// TransactionManager executes fn inside one database transaction, passing
// the tx handle for repositories that accept one. Kept small and stable so
// use-case interfaces never leak storage types.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
