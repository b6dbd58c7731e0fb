package port

import (
	"context"

	"github.com/google/uuid"

	"billscan/internal/domain"
)

// BillRepository abstracts bill persistence.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error)
	ListAll(ctx context.Context) ([]domain.Bill, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
