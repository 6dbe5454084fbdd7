package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ishistore/backend/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) ListProducts(ctx context.Context, category, q string, limit, offset int) ([]models.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, name, price, category, stock, created_at FROM products`
	var args []any
	var wheres []string
	if category != "" {
		args = append(args, category)
		wheres = append(wheres, fmt.Sprintf("category = $%d", len(args)))
	}
	if q != "" {
		args = append(args, "%"+q+"%")
		wheres = append(wheres, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT $" + fmt.Sprint(len(args)+1) + " OFFSET $" + fmt.Sprint(len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) ListTickets(ctx context.Context, customerID, status string, limit int) ([]models.SupportTicket, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `SELECT id, customer_id, status, subject, created_at, closed_at FROM tickets`
	var args []any
	var wheres []string
	if customerID != "" {
		args = append(args, customerID)
		wheres = append(wheres, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if status != "" {
		args = append(args, status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT $" + fmt.Sprint(len(args)+1)
	args = append(args, limit)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SupportTicket
	for rows.Next() {
		var t models.SupportTicket
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.Status, &t.Subject, &t.CreatedAt, &t.ClosedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	var c models.Customer
	err := s.Pool.QueryRow(ctx,
		`SELECT id, name, email, phone FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	return c, err
}

func (s *Store) CreateTicket(ctx context.Context, customerID, subject string) (models.SupportTicket, error) {
	t := models.SupportTicket{
		ID:         fmt.Sprintf("TICK-%d", time.Now().UnixNano()),
		CustomerID: customerID,
		Status:     "open",
		Subject:    &subject,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO tickets (id, customer_id, status, subject, created_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.CustomerID, t.Status, t.Subject, t.CreatedAt)
	if err != nil {
		return models.SupportTicket{}, err
	}
	return t, nil
}

func (s *Store) CloseTicket(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE tickets SET status = 'closed', closed_at = $2 WHERE id = $1 AND status <> 'closed'`,
		id, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ContextSnapshot loads a bounded commerce snapshot for the assistant prompt
// when the caller did not supply one. Failures in individual lookups degrade
// to an emptier snapshot rather than failing the chat request.
func (s *Store) ContextSnapshot(ctx context.Context, customerID string) models.ChatContext {
	var snap models.ChatContext
	if products, err := s.ListProducts(ctx, "", "", 20, 0); err == nil {
		snap.Products = products
	}
	if customerID != "" {
		if c, err := s.GetCustomer(ctx, customerID); err == nil {
			snap.Customer = &c
		}
		if tickets, err := s.ListTickets(ctx, customerID, "open", 10); err == nil {
			snap.Tickets = tickets
		}
	}
	return snap
}
