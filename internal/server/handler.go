package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"nlsql-service/internal/config"
	"nlsql-service/internal/filter"
	"nlsql-service/internal/metrics"
	"nlsql-service/internal/storage"
	"nlsql-service/internal/translator"
	"nlsql-service/internal/types"

	"github.com/tidwall/gjson"
)

// SQLGenerator is the translation capability the handler depends on.
type SQLGenerator interface {
	GenerateSQL(ctx context.Context, req types.QueryRequest, schema types.SchemaInfo) (*translator.Result, error)
}

// SchemaSource provides the schema summary for requests that don't inline one.
type SchemaSource interface {
	Inspect(ctx context.Context) (types.SchemaInfo, error)
}

// QueryResponse is the success payload of POST /api/query.
type QueryResponse struct {
	SQL        string `json:"sql"`
	Provider   string `json:"provider"`
	DurationMs int64  `json:"duration_ms"`
}

// QueryHandler handles incoming natural-language query requests.
type QueryHandler struct {
	config     *config.Config
	translator SQLGenerator
	schemas    SchemaSource
	store      storage.Repository
	sanitizer  filter.PayloadFilter
	sem        chan struct{} // Semaphore to limit concurrent provider calls
}

// NewQueryHandler creates a new query handler. store and schemas may be nil;
// without a schema source, requests must inline a schema.
func NewQueryHandler(cfg *config.Config, tr SQLGenerator, schemas SchemaSource, store storage.Repository, sanitizer filter.PayloadFilter) *QueryHandler {
	return &QueryHandler{
		config:     cfg,
		translator: tr,
		schemas:    schemas,
		store:      store,
		sanitizer:  sanitizer,
		sem:        make(chan struct{}, cfg.Server.ConcurrencyLimit),
	}
}

// ServeHTTP handles POST /api/query synchronously: one blocking provider call
// per request, result returned in the response body.
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slog.Debug("received query request", "method", r.Method, "content_length", r.ContentLength)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Security: limit request body size
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Server.MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Warn("read body failed", "error", err)
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		metrics.QueryRequests.WithLabelValues("invalid").Inc()
		return
	}

	if !utf8.Valid(body) || !gjson.ValidBytes(body) {
		slog.Warn("request body is not valid json")
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		metrics.QueryRequests.WithLabelValues("invalid").Inc()
		return
	}

	req, inlineSchema, ok := probeRequest(body)
	if !ok {
		http.Error(w, "Missing required field: query", http.StatusBadRequest)
		metrics.QueryRequests.WithLabelValues("invalid").Inc()
		return
	}

	if h.sanitizer != nil {
		slog.Debug("query accepted", "payload", string(h.sanitizer.Filter(body)))
	}

	// Concurrency: reject rather than queue when at capacity
	select {
	case h.sem <- struct{}{}:
		defer func() { <-h.sem }()
	default:
		slog.Warn("concurrency limit reached, rejecting request")
		http.Error(w, "Too many concurrent requests", http.StatusServiceUnavailable)
		metrics.QueryRequests.WithLabelValues("rejected").Inc()
		return
	}

	metrics.QueryRequests.WithLabelValues("accepted").Inc()

	schema, err := h.resolveSchema(r.Context(), inlineSchema)
	if err != nil {
		slog.Error("schema resolution failed", "error", err)
		http.Error(w, "Schema unavailable", http.StatusInternalServerError)
		metrics.QueryRequests.WithLabelValues("error").Inc()
		return
	}

	result, err := h.translator.GenerateSQL(r.Context(), req, schema)
	if err != nil {
		slog.Error("translation failed", "provider_preference", req.LLMProvider, "error", err)
		h.persist(req, nil, err)
		writeJSONError(w, err.Error(), http.StatusBadGateway)
		metrics.QueryRequests.WithLabelValues("error").Inc()
		return
	}

	h.persist(req, result, nil)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(QueryResponse{
		SQL:        result.SQL,
		Provider:   result.Provider,
		DurationMs: result.Duration.Milliseconds(),
	}); err != nil {
		slog.Warn("write response failed", "error", err)
	}
}

// probeRequest extracts the request fields tolerantly: "query" is required,
// "llm_provider" falls back to "provider", and an inline "schema" object is
// returned raw for later decoding.
func probeRequest(body []byte) (types.QueryRequest, []byte, bool) {
	query := gjson.GetBytes(body, "query").String()
	if query == "" {
		query = gjson.GetBytes(body, "question").String()
	}
	if query == "" {
		return types.QueryRequest{}, nil, false
	}

	provider := gjson.GetBytes(body, "llm_provider").String()
	if provider == "" {
		provider = gjson.GetBytes(body, "provider").String()
	}

	var inlineSchema []byte
	if s := gjson.GetBytes(body, "schema"); s.Exists() && s.IsObject() {
		inlineSchema = []byte(s.Raw)
	}

	return types.QueryRequest{Query: query, LLMProvider: provider}, inlineSchema, true
}

// resolveSchema prefers an inline schema override and otherwise asks the
// schema source. With neither, the prompt simply carries an empty block.
func (h *QueryHandler) resolveSchema(ctx context.Context, inline []byte) (types.SchemaInfo, error) {
	if inline != nil {
		var schema types.SchemaInfo
		if err := json.Unmarshal(inline, &schema); err != nil {
			return types.SchemaInfo{}, fmt.Errorf("decode inline schema: %w", err)
		}
		return schema, nil
	}

	if h.schemas == nil {
		return types.SchemaInfo{}, nil
	}

	return h.schemas.Inspect(ctx)
}

func (h *QueryHandler) persist(req types.QueryRequest, result *translator.Result, genErr error) {
	if h.store == nil {
		return
	}

	record := &storage.TranslationRecord{
		Query:     req.Query,
		CreatedAt: time.Now().UTC(),
		Status:    "success",
	}
	if result != nil {
		record.ID = fmt.Sprintf("%s-%d", result.Provider, time.Now().UnixNano())
		record.Provider = result.Provider
		record.SQL = result.SQL
		record.DurationMs = result.Duration.Milliseconds()
	} else {
		record.ID = fmt.Sprintf("error-%d", time.Now().UnixNano())
		record.Status = "error"
		if genErr != nil {
			record.Error = genErr.Error()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Storage.Timeout)
	defer cancel()

	if err := h.store.SaveTranslation(ctx, record); err != nil {
		slog.Warn("save translation failed", "error", err)
		metrics.StorageFailures.WithLabelValues("save").Inc()
	}
}

func writeJSONError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
