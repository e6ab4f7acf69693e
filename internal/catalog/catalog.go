// Package catalog lists the showcase titles and creates playable games.
// Playable games register a factory in their init() functions, allowing the
// platform to discover and instantiate them without hardcoded dependencies.
package catalog

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-showcase/internal/core"
)

var (
	// ErrNotFound is returned when no entry has the requested ID.
	ErrNotFound = errors.New("catalog: game not found")
	// ErrNotPlayable is returned when an entry exists but has no factory.
	ErrNotPlayable = errors.New("catalog: game not playable")
)

// Game is the interface every playable title implements.
// Games contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and display.
type Game interface {
	// ID returns the catalog identifier (e.g., "jill").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset loads the first level. Called once at start and on restart.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by dt seconds using the held intents.
	Step(in core.InputFrame, dt float64) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// Status returns the externally visible game status.
	Status() core.Status
}

// Persistent is implemented by games whose state can be saved to slots.
type Persistent interface {
	SnapshotVersion() int
	ValidateSnapshot(data []byte) error
	SaveTo(store core.SlotStore, slot string) error
	LoadFrom(store core.SlotStore, slot string) (bool, error)
}

// Reloader is implemented by games that can re-read their config file.
type Reloader interface {
	ReloadConfig() error
}

// Rasterizer is implemented by games that can paint a full-resolution frame.
type Rasterizer interface {
	Frame(width, height int) image.Image
}

// Env carries the collaborators a factory wires into a new game.
type Env struct {
	Logger     *log.Logger
	Cues       core.CueSink
	ConfigPath string
}

// withDefaults fills unset collaborators with no-op implementations.
func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.Cues == nil {
		e.Cues = core.NopCues{}
	}
	return e
}

// Factory creates a new instance of a game.
type Factory func(env Env) Game

// Entry is the catalog metadata for one title.
type Entry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseYear int    `json:"releaseYear"`
	Genre       string `json:"genre"`
	CoverImage  string `json:"coverImage,omitempty"`
	Playable    bool   `json:"playable"`
}

// Catalog holds entries and the factories of playable ones.
// It is safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	entries   map[string]Entry
	factories map[string]Factory
}

// New creates a catalog holding the given metadata-only entries.
func New(entries ...Entry) *Catalog {
	c := &Catalog{
		entries:   make(map[string]Entry),
		factories: make(map[string]Factory),
	}
	for _, e := range entries {
		c.Add(e)
	}
	return c
}

// Add inserts or replaces a metadata entry without making it playable.
func (c *Catalog) Add(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, e.Playable = c.factories[e.ID]
	c.entries[e.ID] = e
}

// Register adds a playable entry with its factory.
// Panics if a factory with the same ID is already registered.
func (c *Catalog) Register(e Entry, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.factories[e.ID]; exists {
		panic(fmt.Sprintf("catalog: game %q already registered", e.ID))
	}

	e.Playable = true
	c.factories[e.ID] = f
	c.entries[e.ID] = e
}

// List returns all entries sorted by release year, then ID.
func (c *Catalog) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		result = append(result, e)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ReleaseYear != result[j].ReleaseYear {
			return result[i].ReleaseYear < result[j].ReleaseYear
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the entry with the given ID.
func (c *Catalog) Lookup(id string) (Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e, nil
}

// Create instantiates a playable game by its ID.
func (c *Catalog) Create(id string, env Env) (Game, error) {
	c.mu.RLock()
	f, ok := c.factories[id]
	_, listed := c.entries[id]
	c.mu.RUnlock()

	if !ok {
		if listed {
			return nil, fmt.Errorf("%w: %q", ErrNotPlayable, id)
		}
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	return f(env.withDefaults()), nil
}

// Default is the process-wide catalog that games register into.
var Default = New(
	Entry{
		ID:          "commander",
		Title:       "Commander Keen",
		Description: "Join Commander Keen in his space adventures to save the galaxy from alien threats.",
		ReleaseYear: 1990,
		Genre:       "Platformer",
		CoverImage:  "/games/commander/cover.svg",
	},
	Entry{
		ID:          "jazz",
		Title:       "Jazz Jackrabbit",
		Description: "A fast-paced side-scrolling platformer starring Jazz Jackrabbit on a quest to save Princess Eva Earlong.",
		ReleaseYear: 1994,
		Genre:       "Platformer",
		CoverImage:  "/games/jazz/cover.svg",
	},
)

// Register adds a playable game to the Default catalog.
// Typically called from a game's init() function.
func Register(e Entry, f Factory) {
	Default.Register(e, f)
}

// List returns the entries of the Default catalog.
func List() []Entry {
	return Default.List()
}

// Lookup finds an entry in the Default catalog.
func Lookup(id string) (Entry, error) {
	return Default.Lookup(id)
}

// Create instantiates a game from the Default catalog.
func Create(id string, env Env) (Game, error) {
	return Default.Create(id, env)
}
