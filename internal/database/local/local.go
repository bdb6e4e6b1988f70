// Package local holds in-process application and job posting stores used
// when no database is configured.
package local

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"juntell/careers-gateway/internal/application"
)

type DataSource struct {
	mu           sync.RWMutex
	applications map[string]*application.Application
}

func InitDataSource() *DataSource {
	return &DataSource{
		applications: make(map[string]*application.Application),
	}
}

func (ds *DataSource) Create(_ context.Context, app *application.Application) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if _, exists := ds.applications[app.ID]; exists {
		return fmt.Errorf("application %s already exists", app.ID)
	}
	copied := *app
	ds.applications[app.ID] = &copied
	return nil
}

func (ds *DataSource) Get(_ context.Context, id string) (*application.Application, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	app, exists := ds.applications[id]
	if !exists {
		return nil, application.ErrNotFound
	}
	copied := *app
	return &copied, nil
}

// List returns newest first.
func (ds *DataSource) List(_ context.Context, limit, offset int) ([]*application.Application, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	all := make([]*application.Application, 0, len(ds.applications))
	for _, app := range ds.applications {
		copied := *app
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*application.Application{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
