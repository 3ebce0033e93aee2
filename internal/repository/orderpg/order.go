package orderpg

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"figurine/internal/entities"
	"figurine/internal/repository"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repository is the Postgres order store. Update takes a row lock inside a
// serializable transaction, which gives the same single-writer-per-id
// guarantee the file store gets from its per-key mutex.
type Repository struct {
	querier   Querier
	txManager TxManager
}

func New(querier Querier, txManager TxManager) *Repository {
	return &Repository{
		querier:   querier,
		txManager: txManager,
	}
}

func (r *Repository) Create(ctx context.Context, order entities.Order) error {
	orderModel := FromDomain(&order)
	query := `INSERT INTO orders (id, status, artifacts, customer_email, customer_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.querier.Exec(
		ctx,
		query,
		orderModel.ID,
		orderModel.Status,
		orderModel.Artifacts,
		orderModel.CustomerEmail,
		orderModel.CustomerAddress,
		orderModel.CreatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return repository.ErrOrderAlreadyExists
		}
		return fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query := `SELECT id, status, artifacts, customer_email, customer_address, created_at
		FROM orders
		WHERE id = $1`

	orderModel, err := r.scanOrder(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return ToDomain(orderModel), nil
}

func (r *Repository) Update(
	ctx context.Context,
	id string,
	fn func(entities.Order) (entities.Order, error),
) (*entities.Order, error) {
	var updated entities.Order

	err := r.txManager.Do(ctx, func(ctx context.Context) error {
		query := `SELECT id, status, artifacts, customer_email, customer_address, created_at
			FROM orders
			WHERE id = $1
			FOR UPDATE`

		orderModel, err := r.scanOrder(r.querier.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.ErrOrderNotFound
			}
			return fmt.Errorf("lock order row: %w", err)
		}

		current := ToDomain(orderModel)
		next, err := fn(*current)
		if err != nil {
			return err
		}

		// transforms cannot touch the creation-time fields
		next.ID = current.ID
		next.Artifacts = current.Artifacts
		next.CreatedAt = current.CreatedAt

		nextModel := FromDomain(&next)
		builder := qb.
			Update("orders").
			Set("status", nextModel.Status).
			Set("customer_email", nextModel.CustomerEmail).
			Set("customer_address", nextModel.CustomerAddress).
			Where(sq.Eq{"id": nextModel.ID})

		updateQuery, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("build update query: %w", err)
		}

		if _, err := r.querier.Exec(ctx, updateQuery, args...); err != nil {
			return fmt.Errorf("persist order: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Order, error) {
	query := `SELECT id, status, artifacts, customer_email, customer_address, created_at
		FROM orders
		ORDER BY created_at`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 16)
	for rows.Next() {
		var orderModel OrderDB
		err := rows.Scan(
			&orderModel.ID,
			&orderModel.Status,
			&orderModel.Artifacts,
			&orderModel.CustomerEmail,
			&orderModel.CustomerAddress,
			&orderModel.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list error: %w", err)
		}
		orderModels = append(orderModels, orderModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	return ToDomainList(orderModels), nil
}

func (r *Repository) scanOrder(row pgx.Row) (*OrderDB, error) {
	var orderModel OrderDB
	err := row.Scan(
		&orderModel.ID,
		&orderModel.Status,
		&orderModel.Artifacts,
		&orderModel.CustomerEmail,
		&orderModel.CustomerAddress,
		&orderModel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &orderModel, nil
}
