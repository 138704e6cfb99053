package repository

import "context"

// TxManager runs a function inside a single database transaction. The
// transaction travels in the context, so repository calls made within fn
// join it transparently. fn returning an error rolls everything back.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
