package tr

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
)

// CtxWithTx кладет объект транзакции (pgx.Tx) в контекст.
// Репозитории, вызванные с этим контекстом, выполняют запросы внутри транзакции.
func CtxWithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, "tx", tx)
}

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	txAny := ctx.Value("tx")
	tx, ok := txAny.(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}
