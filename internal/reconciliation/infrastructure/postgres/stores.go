package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmehra2102/Payment-Reconciliation-System/internal/reconciliation/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PayoutStore struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewPayoutStore(log *slog.Logger, pool *pgxpool.Pool) *PayoutStore {
	return &PayoutStore{log: log, pool: pool}
}

func (s *PayoutStore) FindByTransaction(ctx context.Context, transactionID string) (*domain.Payout, error) {
	row := s.pool.QueryRow(ctx, `SELECT id, vendor_id, transaction_id, amount_cents, status, created_at, updated_at
		FROM payouts WHERE transaction_id=$1`, transactionID)

	var p domain.Payout
	err := row.Scan(&p.ID, &p.VendorID, &p.TransactionID, &p.AmountCents, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PayoutStore) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := s.pool.Exec(ctx, `UPDATE payouts SET status=$2, updated_at=$3 WHERE id=$1`,
		id, status, time.Now().UTC())
	return err
}

type InvoiceStore struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewInvoiceStore(log *slog.Logger, pool *pgxpool.Pool) *InvoiceStore {
	return &InvoiceStore{log: log, pool: pool}
}

func (s *InvoiceStore) FindByCharge(ctx context.Context, chargeID, processor string) (*domain.Invoice, error) {
	row := s.pool.QueryRow(ctx, `SELECT id, vendor_id, charge_id, charge_processor, charge_status, charge_info, status, amount_cents, created_at, updated_at
		FROM invoices WHERE charge_id=$1 AND charge_processor=$2`, chargeID, processor)

	var inv domain.Invoice
	err := row.Scan(&inv.ID, &inv.VendorID, &inv.ChargeID, &inv.ChargeProcessor,
		&inv.ChargeStatus, &inv.ChargeInfo, &inv.Status, &inv.AmountCents, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *InvoiceStore) ApplyChange(ctx context.Context, id string, c domain.InvoiceChange) error {
	_, err := s.pool.Exec(ctx, `UPDATE invoices SET charge_status=$2, charge_info=$3, status=$4, updated_at=$5 WHERE id=$1`,
		id, c.ChargeStatus, c.ChargeInfo, c.Status, time.Now().UTC())
	return err
}

type CustomerStore struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewCustomerStore(log *slog.Logger, pool *pgxpool.Pool) *CustomerStore {
	return &CustomerStore{log: log, pool: pool}
}

func (s *CustomerStore) FindByAptpayID(ctx context.Context, aptpayID string) (*domain.Customer, error) {
	row := s.pool.QueryRow(ctx, `SELECT id, aptpay_id, aptpay_status, aptpay_error_code, created_at, updated_at
		FROM customers WHERE aptpay_id=$1`, aptpayID)

	var cu domain.Customer
	err := row.Scan(&cu.ID, &cu.AptpayID, &cu.AptpayStatus, &cu.AptpayErrorCode, &cu.CreatedAt, &cu.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cu, nil
}

func (s *CustomerStore) UpdateAptpayState(ctx context.Context, id, status, errorCode string) error {
	_, err := s.pool.Exec(ctx, `UPDATE customers SET aptpay_status=$2, aptpay_error_code=$3, updated_at=$4 WHERE id=$1`,
		id, status, errorCode, time.Now().UTC())
	return err
}

type RevenueShareStore struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRevenueShareStore(log *slog.Logger, pool *pgxpool.Pool) *RevenueShareStore {
	return &RevenueShareStore{log: log, pool: pool}
}

// BookForRefund derives the share from the vendor's configured basis points.
// The partial unique index on refund_id backs up the caller's transition
// guard; the conflict target repeats its predicate so postgres accepts it as
// the arbiter.
func (s *RevenueShareStore) BookForRefund(ctx context.Context, refund domain.Refund) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO revenue_shares (vendor_id, refund_id, amount_cents, has_paid_invoice, created_at)
		SELECT v.id, r.id, r.amount_cents * v.share_bps / 10000, false, $2
		FROM refunds r JOIN vendors v ON v.id = r.vendor_id
		WHERE r.id = $1
		ON CONFLICT (refund_id) WHERE refund_id IS NOT NULL DO NOTHING`,
		refund.ID, time.Now().UTC())
	return err
}

func (s *RevenueShareStore) MarkInvoicePaid(ctx context.Context, invoiceID string) error {
	_, err := s.pool.Exec(ctx, `UPDATE revenue_shares SET has_paid_invoice=true WHERE invoice_id=$1 AND NOT has_paid_invoice`,
		invoiceID)
	return err
}

type VendorStore struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewVendorStore(log *slog.Logger, pool *pgxpool.Pool) *VendorStore {
	return &VendorStore{log: log, pool: pool}
}

func (s *VendorStore) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM vendors`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
