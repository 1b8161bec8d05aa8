package cli

import (
	"errors"
	"fmt"

	"github.com/keiki-saito/habit100-app/internal/keyring"
	"github.com/keiki-saito/habit100-app/internal/storage/postgres"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}

type ConfigCmd struct {
	SetAPIKey           SetAPIKeyCmd           `cmd:"" name:"set-api-key" help:"Store the coaching API key in the OS keyring."`
	SetConnectionString SetConnectionStringCmd `cmd:"" name:"set-connection-string" help:"Store the PostgreSQL connection string in the OS keyring."`
}

type SetAPIKeyCmd struct {
	Key string `arg:"" help:"Coaching service API key."`
}

func (c *SetAPIKeyCmd) Run(_ *Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if err := keyring.SetCoachAPIKey(c.Key); err != nil {
		return err
	}
	fmt.Println("Stored coaching API key in the OS keyring.")
	return nil
}

type SetConnectionStringCmd struct {
	ConnStr string `arg:"" help:"PostgreSQL connection string (password allowed here; it never leaves the keyring)."`
}

func (c *SetConnectionStringCmd) Run(_ *Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	// Embedded credentials are fine here; the keyring is exactly where
	// they belong.
	if _, err := postgres.ValidateConnString(c.ConnStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return err
	}
	if err := keyring.SetConnectionString(c.ConnStr); err != nil {
		return err
	}
	fmt.Println("Stored connection string in the OS keyring.")
	return nil
}
