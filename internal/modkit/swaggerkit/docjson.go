package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sync"
)

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

var (
	mutMu    sync.Mutex
	mutators []SpecMutator
)

// Register adds a spec mutator for swagger JSON
// call this from module init so it is wired automatically
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mutMu.Lock()
	mutators = append(mutators, m)
	mutMu.Unlock()
}

// baseSpec is the maintained OpenAPI skeleton, modules add their paths via Register
const baseSpec = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Paylens API",
    "description": "Privacy-floored salary statistics",
    "version": "1.0.0"
  },
  "servers": [{"url": "/api/v1"}],
  "paths": {}
}`

// serveDocJSON serves swagger JSON and lets modules adjust details
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(baseSpec), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		mutMu.Lock()
		for _, m := range mutators {
			m(spec)
		}
		mutMu.Unlock()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}
