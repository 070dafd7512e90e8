package submit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nya3jp/icfpc2015/internal/storage"
)

// Sink receives finished games.
type Sink interface {
	// Submit delivers one submission. Implementations honor ctx for
	// anything that may block.
	Submit(ctx context.Context, sub Submission) error

	// Close flushes and releases resources.
	Close() error
}

// Options carries everything a sink factory may need. Each sink uses only
// the fields relevant to it.
type Options struct {
	Path     string         // file sink output
	URL      string         // http sink endpoint, may contain %d for TeamID
	APIToken string         // http sink basic-auth password
	TeamID   int            // http sink team
	Timeout  time.Duration  // http sink request timeout
	Client   *http.Client   // http sink client override
	Store    *storage.Store // sqlite sink database
	Writer   io.Writer      // stdout sink output override
	Logger   *log.Logger
}

// SinkInfo contains metadata about a registered sink.
type SinkInfo struct {
	Name        string
	Description string
}

// Factory creates a sink from options.
type Factory func(opts Options) (Sink, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a sink factory to the registry.
// Panics if a sink with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("submit: sink %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered sinks, sorted by name.
func List() []SinkInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SinkInfo, 0, len(factories))
	for name := range factories {
		result = append(result, SinkInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a sink by name.
// Returns an error if the name is not registered.
func Create(name string, opts Options) (Sink, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("submit: unknown sink %q", name)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return f(opts)
}

// Exists checks if a sink with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
