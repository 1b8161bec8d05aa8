package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/keiki-saito/habit100-app/internal/apperr"
	"github.com/keiki-saito/habit100-app/internal/keyring"
	"github.com/keiki-saito/habit100-app/internal/models"
	"github.com/keiki-saito/habit100-app/internal/repository"
	"github.com/keiki-saito/habit100-app/internal/storage"
	"github.com/keiki-saito/habit100-app/internal/storage/kv"
	"github.com/keiki-saito/habit100-app/internal/storage/postgres"
	"github.com/keiki-saito/habit100-app/internal/storage/sqlite"
)

// Context carries the resolved store and repository into every command.
type Context struct {
	Store storage.Provider
	Repo  *repository.Repository
}

// OpenStore selects the storage backend from the config string:
// postgres:// and postgresql:// prefixes select PostgreSQL, a .json
// suffix selects the file-backed key-value store (single-habit), and
// anything else is treated as a SQLite path.
func OpenStore(config string) (storage.Provider, error) {
	config = ExpandPath(config)

	// A bare "postgres" resolves the full connection string from the
	// environment or the OS keyring, keeping credentials off the command
	// line.
	if config == "postgres" {
		conn := os.Getenv("HABIT100_DB_CONNECTION")
		if conn == "" {
			stored, err := keyring.GetConnectionString()
			if err != nil {
				return nil, fmt.Errorf("no connection string configured: set HABIT100_DB_CONNECTION or run 'habit100 config set-connection-string'")
			}
			conn = stored
		}
		return postgres.New(conn), nil
	}

	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if postgres.HasEmbeddedCredentials(config) {
			return nil, fmt.Errorf("connection strings with embedded credentials are not allowed; use the environment, .pgpass, or 'habit100 config set-connection-string'")
		}
		return postgres.New(config), nil
	}
	if strings.HasSuffix(config, ".json") {
		return kv.NewStore(config), nil
	}
	return sqlite.NewStore(config), nil
}

// NewRepository builds the repository for a store. The key-value backend
// is a single-habit deployment.
func NewRepository(store storage.Provider) *repository.Repository {
	if _, ok := store.(*kv.Store); ok {
		return repository.New(store, repository.WithSingleHabit())
	}
	return repository.New(store)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// resolveHabit picks the habit a command operates on: by name when given,
// otherwise the sole registered habit.
func resolveHabit(ctx *Context, name string) (models.Habit, error) {
	habits, err := ctx.Repo.GetHabits()
	if err != nil {
		return models.Habit{}, err
	}
	if name == "" {
		switch len(habits) {
		case 0:
			return models.Habit{}, apperr.Validation("no habit registered; run 'habit100 habit add' first")
		case 1:
			return habits[0], nil
		default:
			return models.Habit{}, apperr.Validation("multiple habits registered; pass --habit to pick one")
		}
	}
	for _, h := range habits {
		if h.Name == name {
			return h, nil
		}
	}
	return models.Habit{}, apperr.NotFound("habit %q not found", name)
}
