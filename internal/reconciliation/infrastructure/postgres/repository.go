package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmehra2102/Payment-Reconciliation-System/internal/reconciliation/domain"
	"github.com/dmehra2102/Payment-Reconciliation-System/pkg/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RefundStore struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRefundStore(log *slog.Logger, pool *pgxpool.Pool) *RefundStore {
	return &RefundStore{log: log, pool: pool}
}

const refundColumns = `id, vendor_id, amount_cents, status, transaction_id, processor,
	transaction_status, transaction_error_code, transaction_info,
	expiration_date, expired, refund_deposited_at, refund_date, created_at, updated_at`

func (s *RefundStore) FindByTransaction(ctx context.Context, transactionID, processor string) (*domain.Refund, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+refundColumns+` FROM refunds WHERE transaction_id=$1 AND processor=$2`,
		transactionID, processor)

	var rf domain.Refund
	err := row.Scan(&rf.ID, &rf.VendorID, &rf.AmountCents, &rf.Status,
		&rf.Transaction.TransactionID, &rf.Transaction.Processor,
		&rf.Transaction.Status, &rf.Transaction.ErrorCode, &rf.Transaction.Info,
		&rf.ExpirationDate, &rf.Expired, &rf.RefundDepositedAt, &rf.RefundDate,
		&rf.CreatedAt, &rf.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rf, nil
}

// ApplyChangeWithOutbox persists a refund change. A status transition is
// guarded in the UPDATE itself, so of any concurrent deliveries exactly one
// observes an affected row; that winner's notification lands in the outbox
// within the same transaction.
func (s *RefundStore) ApplyChangeWithOutbox(ctx context.Context, refundID string, c domain.RefundChange, eventType string, payload []byte, destination string) (bool, error) {
	if !c.Transition {
		_, err := s.pool.Exec(ctx, `UPDATE refunds
			SET transaction_status=$2, transaction_error_code=$3, transaction_info=$4, updated_at=$5
			WHERE id=$1`,
			refundID, c.Transaction.Status, c.Transaction.ErrorCode, c.Transaction.Info, c.At)
		return false, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// The guard mirrors the state machine: settlement re-applies until the
	// refund is processed, errors never move a terminal refund.
	guard := `status <> 'processed'`
	if c.To == domain.RefundFailed {
		guard = `status NOT IN ('processed','failed','canceled')`
	}

	var ct pgconn.CommandTag
	if c.StampDeposit {
		ct, err = tx.Exec(ctx, `UPDATE refunds
			SET status=$2, transaction_status=$3, transaction_error_code=$4, transaction_info=$5,
			    refund_deposited_at=COALESCE(refund_deposited_at,$6), refund_date=COALESCE(refund_date,$6), updated_at=$6
			WHERE id=$1 AND `+guard,
			refundID, c.To, c.Transaction.Status, c.Transaction.ErrorCode, c.Transaction.Info, c.At)
	} else {
		ct, err = tx.Exec(ctx, `UPDATE refunds
			SET status=$2, transaction_status=$3, transaction_error_code=$4, transaction_info=$5, updated_at=$6
			WHERE id=$1 AND `+guard,
			refundID, c.To, c.Transaction.Status, c.Transaction.ErrorCode, c.Transaction.Info, c.At)
	}
	if err != nil {
		return false, err
	}
	if ct.RowsAffected() == 0 {
		// Lost the race or already terminal; nothing to enqueue.
		return false, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, destination, traceparent, status)
		VALUES ($1,$2,$3,$4,$5,$6,'pending')`,
		"refund", refundID, eventType, payload, destination, tracing.Traceparent(ctx))
	if err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}
