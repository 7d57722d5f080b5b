// Package registry maps game IDs to factories. Game packages register their
// variants from init, and the CLI and backends look them up by ID.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/santa-delivery/internal/core"
)

// Game is a playable variant driven by a backend at a fixed tick rate. It
// knows nothing about Bubble Tea or tcell.
type Game interface {
	ID() string
	Title() string

	// Reset starts a new session with the screen size, seed and start
	// stage from cfg.
	Reset(cfg core.RuntimeConfig)

	// Step runs one tick with the actions pressed since the previous one.
	Step(in core.InputFrame) core.StepResult

	// Render repaints all of dst from the current session state.
	Render(dst *core.Screen)

	State() core.GameState
}

// LoggerAware games receive the platform logger on creation.
type LoggerAware interface {
	SetLogger(l *log.Logger)
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

type Factory func() Game

type entry struct {
	title string
	new   Factory
}

var reg = struct {
	sync.RWMutex
	games map[string]entry
}{games: map[string]entry{}}

// Register adds a variant. Registering an ID twice is a programming error
// and panics.
func Register(id string, f Factory) {
	reg.Lock()
	defer reg.Unlock()

	if _, dup := reg.games[id]; dup {
		panic(fmt.Sprintf("registry: duplicate game id %q", id))
	}
	reg.games[id] = entry{title: f().Title(), new: f}
}

// List returns every variant ordered by ID.
func List() []GameInfo {
	reg.RLock()
	infos := make([]GameInfo, 0, len(reg.games))
	for id, e := range reg.games {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	reg.RUnlock()

	slices.SortFunc(infos, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return infos
}

// Create builds a fresh instance of the variant id. A non-nil logger is
// handed to games that accept one.
func Create(id string, logger *log.Logger) (Game, error) {
	reg.RLock()
	e, ok := reg.games[id]
	reg.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: no game %q", id)
	}

	g := e.new()
	if la, ok := g.(LoggerAware); ok && logger != nil {
		la.SetLogger(logger)
	}
	return g, nil
}

func Exists(id string) bool {
	reg.RLock()
	defer reg.RUnlock()
	_, ok := reg.games[id]
	return ok
}
