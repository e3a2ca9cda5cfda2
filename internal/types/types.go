package types

// Provider identifiers accepted in QueryRequest.LLMProvider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// QueryRequest is a natural-language query plus the caller's provider preference.
// The preference is only a tie-break: when exactly one credential set is
// configured, that provider wins regardless of preference.
type QueryRequest struct {
	Query       string `json:"query"`
	LLMProvider string `json:"llm_provider"`
}

// TableInfo describes one table of the source database.
type TableInfo struct {
	Columns  map[string]string `json:"columns"` // column name -> declared type
	RowCount int64             `json:"row_count"`
}

// SchemaInfo is the structural summary of a database that gets embedded
// into the generation prompt. All values are transient, built per request.
type SchemaInfo struct {
	Tables map[string]TableInfo `json:"tables"`
}
