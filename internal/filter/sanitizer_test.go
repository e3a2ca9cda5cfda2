package filter

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

func TestSanitizer_RedactsSensitiveFields(t *testing.T) {
	payload := `{"query":"show all users","llm_provider":"openai","api_key":"sk-secret","token":"abc"}`

	got := string(NewSanitizer(0).Filter([]byte(payload)))

	if gjson.Get(got, "api_key").Exists() {
		t.Error("expected api_key to be removed")
	}
	if gjson.Get(got, "token").Exists() {
		t.Error("expected token to be removed")
	}
	if gjson.Get(got, "query").String() != "show all users" {
		t.Errorf("expected query preserved, got %q", got)
	}
	if gjson.Get(got, "llm_provider").String() != "openai" {
		t.Errorf("expected llm_provider preserved, got %q", got)
	}
}

func TestSanitizer_TruncatesLongStrings(t *testing.T) {
	long := strings.Repeat("x", 500)
	payload, _ := sjson.Set(`{"llm_provider":"openai"}`, "query", long)

	got := string(NewSanitizer(100).Filter([]byte(payload)))

	query := gjson.Get(got, "query").String()
	if len(query) >= 500 {
		t.Errorf("expected truncated query, got %d chars", len(query))
	}
	if !strings.HasSuffix(query, "... [TRUNCATED]") {
		t.Errorf("expected truncation marker, got %q", query)
	}
}

func TestSanitizer_InvalidJSONPassesThrough(t *testing.T) {
	payload := []byte("not json at all")

	got := NewSanitizer(100).Filter(payload)

	if string(got) != string(payload) {
		t.Errorf("expected pass-through for invalid JSON, got %q", got)
	}
}
