package providers

import (
	"strings"
	"sync"

	"github.com/rajkumaran80/findmyflight-backend/internal/models"
)

// Registry holds the providers known to the service. It is written during
// startup and read by every search afterwards.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	order     []string
}

func NewRegistry(list ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range list {
		r.Register(p)
	}
	return r
}

// Register adds p, replacing any provider registered under the same name.
func (r *Registry) Register(p Provider) {
	key := strings.ToLower(p.Name())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[key]; !exists {
		r.order = append(r.order, key)
	}
	r.providers[key] = p
}

func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[strings.ToLower(name)]
	return p, ok
}

// List returns provider names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order))
	for _, key := range r.order {
		names = append(names, r.providers[key].Name())
	}
	return names
}

// Select resolves the providers to query for req. An explicit subset is
// intersected with the registered names; unknown names are dropped. The
// result may be empty.
func (r *Registry) Select(req models.SearchRequest) []string {
	if len(req.IncludeProviders) == 0 {
		return r.List()
	}

	wanted := make(map[string]struct{}, len(req.IncludeProviders))
	for _, name := range req.IncludeProviders {
		wanted[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	selected := make([]string, 0, len(wanted))
	for _, key := range r.order {
		if _, ok := wanted[key]; ok {
			selected = append(selected, r.providers[key].Name())
		}
	}
	return selected
}

func (r *Registry) Health() []models.ProviderInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info := make([]models.ProviderInfo, 0, len(r.order))
	for _, key := range r.order {
		p := r.providers[key]
		info = append(info, models.ProviderInfo{Name: p.Name(), Healthy: p.IsHealthy()})
	}
	return info
}
