// Package supabase adapts the store ports to a hosted Supabase project via
// its PostgREST API: inserts, updates and equality-filtered selects on the
// gastos and orcamentos tables. There is no official Go SDK; the surface
// needed here is four REST verbs with two fixed headers.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/felipe-tno/moneymate/internal/core"
)

const (
	tableExpenses = "gastos"
	tableBudgets  = "orcamentos"

	defaultTimeout = 15 * time.Second
)

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// New builds a client for the project at baseURL authenticated with the
// service key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

// Row shapes mirror the remote tables. Amounts travel as plain numbers
// (valor, limite_mensal); timestamps as ISO strings assigned by the store.
type (
	gastoRow struct {
		ID          int64   `json:"id_gasto,omitempty"`
		UserID      string  `json:"id_usuario"`
		Description string  `json:"descricao"`
		Amount      float64 `json:"valor"`
		Category    string  `json:"categoria"`
		CreatedAt   string  `json:"criado_em,omitempty"`
	}

	orcamentoRow struct {
		ID        int64   `json:"id_orcamento,omitempty"`
		UserID    string  `json:"id_usuario"`
		Category  string  `json:"categoria"`
		Limit     float64 `json:"limite_mensal"`
		CreatedAt string  `json:"criado_em,omitempty"`
	}
)

// AppendExpense implements store.ExpenseWriter.
func (c *Client) AppendExpense(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	row := gastoRow{
		UserID:      e.UserID,
		Description: e.Description,
		Amount:      e.Amount.Float(),
		Category:    e.Category.String(),
	}
	var inserted []gastoRow
	if err := c.insert(ctx, tableExpenses, row, &inserted); err != nil {
		return "", fmt.Errorf("insert gasto: %w", err)
	}
	if len(inserted) == 0 {
		return "", fmt.Errorf("insert gasto: empty representation returned")
	}
	return strconv.FormatInt(inserted[0].ID, 10), nil
}

// ListExpenses implements store.ExpenseLister.
func (c *Client) ListExpenses(ctx context.Context, userID string) ([]core.Expense, error) {
	return c.selectExpenses(ctx, url.Values{
		"id_usuario": {"eq." + userID},
		"select":     {"*"},
		"order":      {"criado_em.asc"},
	})
}

// ListExpensesByCategory implements store.ExpenseLister.
func (c *Client) ListExpensesByCategory(ctx context.Context, userID string, cat core.Category) ([]core.Expense, error) {
	return c.selectExpenses(ctx, url.Values{
		"id_usuario": {"eq." + userID},
		"categoria":  {"eq." + cat.String()},
		"select":     {"*"},
		"order":      {"criado_em.asc"},
	})
}

func (c *Client) selectExpenses(ctx context.Context, query url.Values) ([]core.Expense, error) {
	var rows []gastoRow
	if err := c.selectRows(ctx, tableExpenses, query, &rows); err != nil {
		return nil, fmt.Errorf("select gastos: %w", err)
	}
	out := make([]core.Expense, 0, len(rows))
	for _, r := range rows {
		out = append(out, core.Expense{
			ID:          strconv.FormatInt(r.ID, 10),
			UserID:      r.UserID,
			Description: r.Description,
			Amount:      core.MoneyFromFloat(r.Amount),
			Category:    core.Category(r.Category),
			CreatedAt:   parseTimestamp(r.CreatedAt),
		})
	}
	return out, nil
}

// ListBudgets implements store.BudgetReader.
func (c *Client) ListBudgets(ctx context.Context, userID string, cat core.Category) ([]core.Budget, error) {
	var rows []orcamentoRow
	query := url.Values{
		"id_usuario": {"eq." + userID},
		"categoria":  {"eq." + cat.String()},
		"select":     {"*"},
		"order":      {"criado_em.asc"},
	}
	if err := c.selectRows(ctx, tableBudgets, query, &rows); err != nil {
		return nil, fmt.Errorf("select orcamentos: %w", err)
	}
	out := make([]core.Budget, 0, len(rows))
	for _, r := range rows {
		out = append(out, core.Budget{
			ID:           strconv.FormatInt(r.ID, 10),
			UserID:       r.UserID,
			Category:     core.Category(r.Category),
			MonthlyLimit: core.MoneyFromFloat(r.Limit),
			CreatedAt:    parseTimestamp(r.CreatedAt),
		})
	}
	return out, nil
}

// InsertBudget implements store.BudgetWriter.
func (c *Client) InsertBudget(ctx context.Context, b core.Budget) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	row := orcamentoRow{
		UserID:   b.UserID,
		Category: b.Category.String(),
		Limit:    b.MonthlyLimit.Float(),
	}
	var inserted []orcamentoRow
	if err := c.insert(ctx, tableBudgets, row, &inserted); err != nil {
		return "", fmt.Errorf("insert orcamento: %w", err)
	}
	if len(inserted) == 0 {
		return "", fmt.Errorf("insert orcamento: empty representation returned")
	}
	return strconv.FormatInt(inserted[0].ID, 10), nil
}

// UpdateBudgetLimit implements store.BudgetWriter.
func (c *Client) UpdateBudgetLimit(ctx context.Context, id string, limit core.Money) error {
	if err := limit.Validate(); err != nil {
		return err
	}
	query := url.Values{"id_orcamento": {"eq." + id}}
	body := map[string]float64{"limite_mensal": limit.Float()}
	if err := c.patch(ctx, tableBudgets, query, body); err != nil {
		return fmt.Errorf("update orcamento %s: %w", id, err)
	}
	return nil
}

func (c *Client) insert(ctx context.Context, table string, row, out any) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, table, nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=representation")
	return c.do(req, out)
}

func (c *Client) selectRows(ctx context.Context, table string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, table, query, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) patch(ctx context.Context, table string, query url.Values, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPatch, table, query, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) newRequest(ctx context.Context, method, table string, query url.Values, body io.Reader) (*http.Request, error) {
	endpoint := c.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseTimestamp handles the timestamp shapes PostgREST emits, with and
// without timezone or fractional seconds. Unparseable values yield the zero
// time; month filtering then simply skips the row.
func parseTimestamp(s string) time.Time {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
