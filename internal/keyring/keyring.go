package keyring

import (
	"errors"
	"fmt"

	"github.com/keiki-saito/habit100-app/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no secret is found in the keyring
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(constants.DefaultKeyringUser, connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return remove(constants.DefaultKeyringUser)
}

// GetCoachAPIKey retrieves the coaching service API key from the OS keyring.
func GetCoachAPIKey() (string, error) {
	return get(constants.CoachKeyringUser)
}

// SetCoachAPIKey stores the coaching service API key in the OS keyring.
func SetCoachAPIKey(key string) error {
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	return set(constants.CoachKeyringUser, key)
}

// DeleteCoachAPIKey removes the coaching service API key from the OS keyring.
func DeleteCoachAPIKey() error {
	return remove(constants.CoachKeyringUser)
}

func get(user string) (string, error) {
	secret, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		// Wrap other keyring errors as unavailable
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func set(user, secret string) error {
	if err := keyring.Set(constants.AppName, user, secret); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

func remove(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	// If the error is ErrNotFound, the keyring is available but empty.
	// Any other error likely indicates the keyring is not available.
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
