package adapter

import (
	"encoding/json"
)

// JSON encodes cache entries, published events and CLI output
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	Marshal(v any) ([]byte, error)
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type stdJSON struct{}

// NewJSON returns the encoding/json backed implementation
func NewJSON() JSON {
	return stdJSON{}
}

func (stdJSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (stdJSON) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(v, prefix, indent)
}

func (stdJSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
