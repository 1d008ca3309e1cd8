// Package codec centralizes snapshot encoding.
//
// Codec selection is a compatibility boundary: snapshots written with
// one codec must be readable by the codec configured on the loading
// store. Both built-in codecs emit JSON, so they are interchangeable.
package codec

// Codec encodes and decodes snapshot payloads.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}
