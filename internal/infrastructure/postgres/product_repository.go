package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sige-scm/sige-backend/internal/domain"
	"github.com/sige-scm/sige-backend/internal/domain/entity"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste la ficha del producto. La PK sobre sku cierra la carrera de
// registros duplicados: un gemelo concurrente cae acá como 23505 → ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (sku, name, min_level, max_level, cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		product.SKU, product.Name, product.MinLevel, product.MaxLevel, product.Cost,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetBySKU obtiene un producto por SKU, o (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `
		SELECT sku, name, min_level, max_level, cost, created_at, updated_at
		FROM products WHERE sku = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, sku).Scan(
		&p.SKU, &p.Name, &p.MinLevel, &p.MaxLevel, &p.Cost, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListWithBalances devuelve el catálogo completo con su saldo actual, ordenado por SKU.
func (r *ProductRepo) ListWithBalances(ctx context.Context) ([]repository.ProductWithBalance, error) {
	query := `
		SELECT p.sku, p.name, p.min_level, p.max_level, p.cost, p.created_at, p.updated_at,
		       COALESCE(b.quantity, 0), COALESCE(b.updated_at, p.updated_at)
		FROM products p
		LEFT JOIN stock_balances b ON b.sku = p.sku
		ORDER BY p.sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]repository.ProductWithBalance, 0)
	for rows.Next() {
		var item repository.ProductWithBalance
		if err := rows.Scan(
			&item.Product.SKU, &item.Product.Name, &item.Product.MinLevel, &item.Product.MaxLevel,
			&item.Product.Cost, &item.Product.CreatedAt, &item.Product.UpdatedAt,
			&item.Balance, &item.BalanceUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
