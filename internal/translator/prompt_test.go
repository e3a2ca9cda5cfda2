package translator

import (
	"strings"
	"testing"

	"nlsql-service/internal/types"
)

func TestFormatSchema_Empty(t *testing.T) {
	got := FormatSchema(types.SchemaInfo{Tables: map[string]types.TableInfo{}})
	if got != "" {
		t.Errorf("expected empty string for empty schema, got %q", got)
	}

	got = FormatSchema(types.SchemaInfo{})
	if got != "" {
		t.Errorf("expected empty string for nil tables, got %q", got)
	}
}

func TestFormatSchema_SingleTable(t *testing.T) {
	schema := types.SchemaInfo{
		Tables: map[string]types.TableInfo{
			"users": {
				Columns:  map[string]string{"id": "INTEGER", "name": "TEXT", "age": "INTEGER"},
				RowCount: 100,
			},
		},
	}

	got := FormatSchema(schema)

	want := "Table: users\n" +
		"Columns:\n" +
		"  - age (INTEGER)\n" +
		"  - id (INTEGER)\n" +
		"  - name (TEXT)\n" +
		"Row count: 100\n"
	if got != want {
		t.Errorf("FormatSchema() = %q, want %q", got, want)
	}
}

func TestFormatSchema_MultipleTables(t *testing.T) {
	schema := types.SchemaInfo{
		Tables: map[string]types.TableInfo{
			"users": {
				Columns:  map[string]string{"id": "INTEGER", "name": "TEXT"},
				RowCount: 100,
			},
			"products": {
				Columns:  map[string]string{"id": "INTEGER", "price": "REAL"},
				RowCount: 50,
			},
		},
	}

	got := FormatSchema(schema)

	// One "Table:" header and one "Row count:" line per table.
	if n := strings.Count(got, "Table: "); n != 2 {
		t.Errorf("expected 2 table headers, got %d in %q", n, got)
	}
	if n := strings.Count(got, "Row count: "); n != 2 {
		t.Errorf("expected 2 row count lines, got %d in %q", n, got)
	}

	// Sorted order is deterministic: products before users, every time.
	for i := 0; i < 10; i++ {
		if FormatSchema(schema) != got {
			t.Fatal("FormatSchema is not deterministic")
		}
	}
	if strings.Index(got, "Table: products") > strings.Index(got, "Table: users") {
		t.Errorf("expected sorted table order, got %q", got)
	}

	for _, want := range []string{
		"  - id (INTEGER)",
		"  - name (TEXT)",
		"  - price (REAL)",
		"Row count: 100",
		"Row count: 50",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in formatted schema %q", want, got)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	schema := types.SchemaInfo{
		Tables: map[string]types.TableInfo{
			"orders": {Columns: map[string]string{"id": "INTEGER"}, RowCount: 7},
		},
	}

	got := BuildPrompt("show all orders", schema)

	for _, want := range []string{
		"Given the following database schema:",
		"Table: orders",
		`Convert this natural language query to SQL: "show all orders"`,
		"Return ONLY the SQL query, no explanations",
		"Use proper SQLite syntax",
		`"last week" = date('now', '-7 days')`,
		"SQL Query:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildPrompt_EmptySchema(t *testing.T) {
	got := BuildPrompt("show everything", types.SchemaInfo{})

	if !strings.Contains(got, `Convert this natural language query to SQL: "show everything"`) {
		t.Errorf("expected query embedded in prompt, got %q", got)
	}
	if strings.Contains(got, "Table:") {
		t.Errorf("expected no table block for empty schema, got %q", got)
	}
}
