package translator

import (
	"fmt"
	"sort"
	"strings"

	"nlsql-service/internal/types"
)

// promptTemplate embeds the schema block and the natural-language query along
// with the fixed rule-set. Sent verbatim to the selected provider.
const promptTemplate = `Given the following database schema:

%s

Convert this natural language query to SQL: "%s"

Rules:
- Return ONLY the SQL query, no explanations
- Use proper SQLite syntax
- Handle date/time queries appropriately (e.g., "last week" = date('now', '-7 days'))
- Be careful with column names and table names
- If the query is ambiguous, make reasonable assumptions

SQL Query:`

// FormatSchema renders SchemaInfo into a deterministic textual block. Tables
// and columns are emitted in sorted-name order so the same schema always
// produces the same prompt. An empty schema renders as an empty string.
func FormatSchema(schema types.SchemaInfo) string {
	if len(schema.Tables) == 0 {
		return ""
	}

	tableNames := make([]string, 0, len(schema.Tables))
	for name := range schema.Tables {
		tableNames = append(tableNames, name)
	}
	sort.Strings(tableNames)

	var b strings.Builder
	for _, tableName := range tableNames {
		table := schema.Tables[tableName]

		fmt.Fprintf(&b, "Table: %s\n", tableName)
		b.WriteString("Columns:\n")

		colNames := make([]string, 0, len(table.Columns))
		for name := range table.Columns {
			colNames = append(colNames, name)
		}
		sort.Strings(colNames)

		for _, colName := range colNames {
			fmt.Fprintf(&b, "  - %s (%s)\n", colName, table.Columns[colName])
		}

		fmt.Fprintf(&b, "Row count: %d\n\n", table.RowCount)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// BuildPrompt assembles the full generation prompt for a query.
func BuildPrompt(query string, schema types.SchemaInfo) string {
	return fmt.Sprintf(promptTemplate, FormatSchema(schema), query)
}
