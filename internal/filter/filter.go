package filter

// PayloadFilter defines the interface for filtering request payloads before
// they are logged or persisted.
type PayloadFilter interface {
	// Filter receives raw JSON bytes and returns filtered JSON bytes
	Filter(payload []byte) []byte
}
