package identity

import (
	"github.com/mcoot/turnherald/internal/model"
)

// Resolver maps upstream player identifiers to mentionable chat identities.
// The mapping is an immutable snapshot taken at construction; a missing
// entry is normal and falls back to the plain upstream name.
type Resolver struct {
	mapping map[string]string
}

// New creates a resolver over a copy of the given mapping
func New(mapping map[string]string) *Resolver {
	copied := make(map[string]string, len(mapping))
	for k, v := range mapping {
		copied[k] = v
	}
	return &Resolver{mapping: copied}
}

// Resolve returns the mention form for an upstream player id. Unmapped
// players resolve to a plain display form; this never fails.
func (r *Resolver) Resolve(upstreamID string) model.Mention {
	if chatID, ok := r.mapping[upstreamID]; ok && chatID != "" {
		return model.Mention{DisplayName: upstreamID, ChatID: chatID}
	}
	return model.Mention{DisplayName: upstreamID}
}
