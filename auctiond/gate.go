package main

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/pitchside-io/teamauction/store"
)

const gateCacheSize = 1024

// Gate authenticates controller and viewer credentials against the
// store. Successful lookups are memoized in LRU caches so the hot
// path of a live auction does not rescan every tournament on each
// login. Failed lookups are never cached.
type Gate struct {
	store       *store.Store
	controllers *lru.Cache // controllerID "\x00" password -> tournament ID
	viewers     *lru.Cache // viewer code -> tournament ID
}

func NewGate(st *store.Store) (*Gate, error) {
	controllers, err := lru.New(gateCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create controller cache: %w", err)
	}
	viewers, err := lru.New(gateCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create viewer cache: %w", err)
	}
	return &Gate{
		store:       st,
		controllers: controllers,
		viewers:     viewers,
	}, nil
}

// LoginController resolves a controller ID and password to the
// tournament they control.
func (g *Gate) LoginController(controllerID, password string) (string, error) {
	key := controllerID + "\x00" + password
	if cached, ok := g.controllers.Get(key); ok {
		return cached.(string), nil
	}

	tournamentID, err := g.store.FindController(controllerID, password)
	if err != nil {
		return "", err
	}
	g.controllers.Add(key, tournamentID)
	return tournamentID, nil
}

// LoginViewer resolves a viewer access code to its tournament.
func (g *Gate) LoginViewer(code string) (string, error) {
	if cached, ok := g.viewers.Get(code); ok {
		return cached.(string), nil
	}

	tournamentID, err := g.store.FindViewer(code)
	if err != nil {
		return "", err
	}
	g.viewers.Add(code, tournamentID)
	return tournamentID, nil
}
