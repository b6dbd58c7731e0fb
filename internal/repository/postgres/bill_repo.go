package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billscan/internal/domain"
	"billscan/internal/port"
)

type billRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a new PostgreSQL-backed BillRepository.
func NewBillRepo(db *sqlx.DB) port.BillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Create(ctx context.Context, bill *domain.Bill) error {
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	query := `INSERT INTO bills
		(id, file_name, content_type, file_size, s3_bucket, s3_key, engine,
		 document_type, raw_text, structured_data, status, scan_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		bill.ID, bill.FileName, bill.ContentType, bill.FileSize, bill.S3Bucket,
		bill.S3Key, bill.Engine, bill.DocumentType, bill.RawText, bill.StructuredData,
		bill.Status, bill.ScanError, bill.CreatedAt, bill.UpdatedAt)
	if err != nil {
		return fmt.Errorf("billRepo.Create: %w", err)
	}
	return nil
}

func (r *billRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill, "SELECT * FROM bills WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM bills")
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.List count: %w", err)
	}

	var bills []domain.Bill
	err = r.db.SelectContext(ctx, &bills,
		"SELECT * FROM bills ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.List: %w", err)
	}
	return bills, total, nil
}

func (r *billRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bills WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("billRepo.Delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("billRepo.Delete: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *billRepo) ListAll(ctx context.Context) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := r.db.SelectContext(ctx, &bills, "SELECT * FROM bills ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("billRepo.ListAll: %w", err)
	}
	return bills, nil
}
