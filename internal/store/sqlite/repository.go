// Package sqlite provides the self-hosted store adapter backed by a local
// SQLite database with embedded migrations.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/felipe-tno/moneymate/internal/core"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AppendExpense implements store.ExpenseWriter.
func (r *Repository) AppendExpense(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO gastos (id_usuario, descricao, valor_centavos, categoria, criado_em)
		 VALUES (?, ?, ?, ?, ?)`,
		e.UserID, e.Description, e.Amount.Cents, e.Category.String(), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert gasto: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// ListExpenses implements store.ExpenseLister.
func (r *Repository) ListExpenses(ctx context.Context, userID string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_gasto, id_usuario, descricao, valor_centavos, categoria, criado_em
		 FROM gastos WHERE id_usuario = ? ORDER BY criado_em ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("select gastos: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// ListExpensesByCategory implements store.ExpenseLister.
func (r *Repository) ListExpensesByCategory(ctx context.Context, userID string, cat core.Category) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_gasto, id_usuario, descricao, valor_centavos, categoria, criado_em
		 FROM gastos WHERE id_usuario = ? AND categoria = ? ORDER BY criado_em ASC`,
		userID, cat.String())
	if err != nil {
		return nil, fmt.Errorf("select gastos by category: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func scanExpenses(rows *sql.Rows) ([]core.Expense, error) {
	out := make([]core.Expense, 0)
	for rows.Next() {
		var (
			id        int64
			e         core.Expense
			cents     int64
			categoria string
		)
		if err := rows.Scan(&id, &e.UserID, &e.Description, &cents, &categoria, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan gasto: %w", err)
		}
		e.ID = strconv.FormatInt(id, 10)
		e.Amount = core.Money{Cents: cents}
		e.Category = core.Category(categoria)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gastos: %w", err)
	}
	return out, nil
}

// ListBudgets implements store.BudgetReader.
func (r *Repository) ListBudgets(ctx context.Context, userID string, cat core.Category) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_orcamento, id_usuario, categoria, limite_centavos, criado_em
		 FROM orcamentos WHERE id_usuario = ? AND categoria = ? ORDER BY criado_em ASC`,
		userID, cat.String())
	if err != nil {
		return nil, fmt.Errorf("select orcamentos: %w", err)
	}
	defer rows.Close()

	out := make([]core.Budget, 0)
	for rows.Next() {
		var (
			id        int64
			b         core.Budget
			cents     int64
			categoria string
		)
		if err := rows.Scan(&id, &b.UserID, &categoria, &cents, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan orcamento: %w", err)
		}
		b.ID = strconv.FormatInt(id, 10)
		b.Category = core.Category(categoria)
		b.MonthlyLimit = core.Money{Cents: cents}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orcamentos: %w", err)
	}
	return out, nil
}

// InsertBudget implements store.BudgetWriter.
func (r *Repository) InsertBudget(ctx context.Context, b core.Budget) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO orcamentos (id_usuario, categoria, limite_centavos, criado_em)
		 VALUES (?, ?, ?, ?)`,
		b.UserID, b.Category.String(), b.MonthlyLimit.Cents, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert orcamento: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// UpdateBudgetLimit implements store.BudgetWriter.
func (r *Repository) UpdateBudgetLimit(ctx context.Context, id string, limit core.Money) error {
	if err := limit.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE orcamentos SET limite_centavos = ? WHERE id_orcamento = ?`,
		limit.Cents, id)
	if err != nil {
		return fmt.Errorf("update orcamento: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("orcamento %s not found", id)
	}
	return nil
}
