// Package registry holds the game factories. Each game package registers
// itself from init(), so the platform and the CLI can list and start games
// by id without importing them directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tapcricket/internal/core"
)

// Game is implemented by every game. Games hold pure logic and never see the
// terminal: the platform maps keys to actions, drives Step at a fixed tick
// and turns the Screen into output.
type Game interface {
	// ID is the stable identifier used on the command line and in the
	// score database (e.g. "cricket").
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new session. Called once before the first Step.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame. dst is cleared beforehand.
	Render(dst *core.Screen)

	// State reports score and lifecycle flags.
	State() core.GameState
}

// Services are platform facilities a game may use.
type Services struct {
	Store  core.KVStore // Durable values such as the best score; nil means in-memory
	Logger *log.Logger  // Diagnostics; nil means discard
}

// ServiceUser is implemented by games that want Services. Attach is called
// before Reset.
type ServiceUser interface {
	Attach(s Services)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a game factory. It panics on duplicate ids.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(factories))
	for id := range factories {
		out = append(out, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create instantiates a game by id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// CreateWith instantiates a game and hands it the services if it uses them.
func CreateWith(id string, s Services) (Game, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	if u, ok := g.(ServiceUser); ok {
		u.Attach(s)
	}
	return g, nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
