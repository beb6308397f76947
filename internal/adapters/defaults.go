package adapters

import "github.com/floorplan-project/placement-api/internal/adapters/csvio"

// NewDefaultRegistry returns a registry with the built-in formats.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	// Registration of built-ins cannot collide on a fresh registry.
	_ = r.Register("csv", func() DesignAdapter { return csvio.NewAdapter() })
	_ = r.Register("json", func() DesignAdapter { return NewJSONAdapter() })
	return r
}
