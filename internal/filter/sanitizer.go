package filter

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// sensitiveFields are dropped outright: they have no business appearing in
// logs or the translation history.
var sensitiveFields = []string{
	"api_key",
	"apiKey",
	"openai_api_key",
	"aws_access_key_id",
	"aws_secret_access_key",
	"token",
	"authorization",
}

// Sanitizer redacts sensitive fields and truncates oversized ones from a
// query request payload.
type Sanitizer struct {
	MaxStringLen int
}

// NewSanitizer creates a Sanitizer. maxStringLen bounds the length of any
// string field kept in the output; 0 disables truncation.
func NewSanitizer(maxStringLen int) *Sanitizer {
	return &Sanitizer{MaxStringLen: maxStringLen}
}

// Filter implements PayloadFilter. Invalid JSON passes through untouched;
// the caller already validates payloads before using them.
func (s *Sanitizer) Filter(payload []byte) []byte {
	if !gjson.ValidBytes(payload) {
		return payload
	}

	result := string(payload)
	for _, field := range sensitiveFields {
		if gjson.Get(result, field).Exists() {
			result, _ = sjson.Delete(result, field)
		}
	}

	if s.MaxStringLen > 0 {
		gjson.Parse(result).ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.String && len(value.Str) > s.MaxStringLen {
				result, _ = sjson.Set(result, key.String(), value.Str[:s.MaxStringLen]+"... [TRUNCATED]")
			}
			return true
		})
	}

	return []byte(result)
}
