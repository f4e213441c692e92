package channel

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/memohai/agentcore/internal/identity"
)

// Document is the structural form of a Channel that the JSON schemas describe.
type Document struct {
	Kind           Kind   `json:"kind"`
	ChainID        int64  `json:"chainId,omitempty"`
	Address        string `json:"address,omitempty"`
	FirstIdentity  string `json:"firstIdentity,omitempty"`
	SecondIdentity string `json:"secondIdentity,omitempty"`
}

// fieldPattern keeps the wire delimiter and whitespace out of every field.
const fieldPattern = `^[^:\s]+$`

var schemas = mustResolveSchemas()

func ptr[T any](v T) *T { return &v }

// noMore rejects any property not listed in Properties.
func noMore() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

// CoinSchema describes a coin channel document.
func CoinSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"kind", "chainId", "address"},
		Properties: map[string]*jsonschema.Schema{
			"kind":    {Type: "string", Enum: []any{string(KindCoin)}},
			"chainId": {Type: "integer", Minimum: ptr(1.0)},
			"address": {Type: "string", MinLength: ptr(1), Pattern: fieldPattern},
		},
		AdditionalProperties: noMore(),
	}
}

// DMSchema describes a DM channel document.
func DMSchema() *jsonschema.Schema {
	identitySchema := func() *jsonschema.Schema {
		return &jsonschema.Schema{
			Type:      "string",
			MinLength: ptr(1),
			MaxLength: ptr(identity.MaxLength),
			Pattern:   fieldPattern,
		}
	}
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"kind", "firstIdentity", "secondIdentity"},
		Properties: map[string]*jsonschema.Schema{
			"kind":           {Type: "string", Enum: []any{string(KindDM)}},
			"firstIdentity":  identitySchema(),
			"secondIdentity": identitySchema(),
		},
		AdditionalProperties: noMore(),
	}
}

func mustResolveSchemas() map[Kind]*jsonschema.Resolved {
	out := make(map[Kind]*jsonschema.Resolved, 2)
	for kind, schema := range map[Kind]*jsonschema.Schema{
		KindCoin: CoinSchema(),
		KindDM:   DMSchema(),
	} {
		resolved, err := schema.Resolve(nil)
		if err != nil {
			panic(fmt.Sprintf("resolve %s channel schema: %v", kind, err))
		}
		out[kind] = resolved
	}
	return out
}

// Document returns the structural form of c.
func (c Channel) Document() Document {
	return Document{
		Kind:           c.Kind,
		ChainID:        c.ChainID,
		Address:        c.Address,
		FirstIdentity:  c.First.String(),
		SecondIdentity: c.Second.String(),
	}
}

func validateSchema(c Channel) error {
	resolved, ok := schemas[c.Kind]
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidChannel, c.Kind)
	}
	raw, err := json.Marshal(c.Document())
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrInvalidChannel, err)
	}
	var instance map[string]any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrInvalidChannel, err)
	}
	if err := resolved.Validate(instance); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidChannel, c.Kind, err)
	}
	return nil
}
