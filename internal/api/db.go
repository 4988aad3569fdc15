package api

import (
	"context"
	"database/sql"

	"github.com/danielgtaylor/huma/v2"
)

// DBHandler exposes the registration ledger.
type DBHandler struct {
	db *sql.DB
}

// NewDBHandler creates a new database handler. db may be nil.
func NewDBHandler(db *sql.DB) *DBHandler {
	return &DBHandler{db: db}
}

// RegisterRoutes registers database routes with Huma.
func (h *DBHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/tables", h.ListTables, huma.OperationTags("db"))
	huma.Post(api, "/api/v1/query", h.Query, huma.OperationTags("db"))
	huma.Get(api, "/api/v1/registrations", h.Registrations, huma.OperationTags("db"))
}

// TablesBody lists table names.
type TablesBody struct {
	Tables []string `json:"tables" doc:"List of table names"`
}

// ListTables returns all DuckDB tables.
func (h *DBHandler) ListTables(ctx context.Context, input *struct{}) (*struct{ Body TablesBody }, error) {
	if h.db == nil {
		return nil, huma.Error503ServiceUnavailable("Database not available")
	}

	rows, err := h.db.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list tables", err)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err == nil {
			tables = append(tables, name)
		}
	}

	return &struct{ Body TablesBody }{Body: TablesBody{Tables: tables}}, nil
}

// QueryInput is the input for SQL queries.
type QueryInput struct {
	Body struct {
		Query string `json:"query" required:"true" doc:"SQL query to execute"`
	}
}

// RowsBody is a generic result set.
type RowsBody struct {
	Columns []string         `json:"columns" doc:"Column names"`
	Rows    []map[string]any `json:"rows" doc:"Query results"`
	Count   int              `json:"count" doc:"Number of rows returned"`
}

// Query executes a SQL query against DuckDB.
func (h *DBHandler) Query(ctx context.Context, input *QueryInput) (*struct{ Body RowsBody }, error) {
	if h.db == nil {
		return nil, huma.Error503ServiceUnavailable("Database not available")
	}

	rows, err := h.db.QueryContext(ctx, input.Body.Query)
	if err != nil {
		return nil, huma.Error400BadRequest("Query failed: " + err.Error())
	}
	defer rows.Close()

	body, err := scanRows(rows)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to read rows", err)
	}
	return &struct{ Body RowsBody }{Body: body}, nil
}

// Registrations returns the ledger, newest first.
func (h *DBHandler) Registrations(ctx context.Context, input *struct{}) (*struct{ Body RowsBody }, error) {
	if h.db == nil {
		return nil, huma.Error503ServiceUnavailable("Database not available")
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT registered_at, seq, layer_id, version, category, typename, url, format, rules
		 FROM asset_registrations ORDER BY registered_at DESC, seq`)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to read ledger", err)
	}
	defer rows.Close()

	body, err := scanRows(rows)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to read rows", err)
	}
	return &struct{ Body RowsBody }{Body: body}, nil
}

func scanRows(rows *sql.Rows) (RowsBody, error) {
	columns, err := rows.Columns()
	if err != nil {
		return RowsBody{}, err
	}

	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			continue
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		results = append(results, row)
	}

	return RowsBody{Columns: columns, Rows: results, Count: len(results)}, rows.Err()
}
