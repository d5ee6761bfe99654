package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"cripes/internal/constants"
)

var (
	// ErrNotFound is returned when no API key is found in the keyring
	ErrNotFound = errors.New("API key not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetAPIKey retrieves the Gemini API key from the OS keyring, falling
// back to the CRIPES_API_KEY environment variable. Returns ErrNotFound
// when neither source has a key.
func GetAPIKey() (string, error) {
	key, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err == nil {
		return key, nil
	}
	if err != keyring.ErrNotFound {
		// Keyring backend broken or missing; the env var still works.
		if envKey := os.Getenv(constants.APIKeyEnvVar); envKey != "" {
			return envKey, nil
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	if envKey := os.Getenv(constants.APIKeyEnvVar); envKey != "" {
		return envKey, nil
	}
	return "", ErrNotFound
}

// SetAPIKey stores the Gemini API key in the OS keyring.
func SetAPIKey(key string) error {
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, key); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

// DeleteAPIKey removes the Gemini API key from the OS keyring.
func DeleteAPIKey() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete API key from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring works but is empty; any other error
	// likely means the backend is unavailable.
	return err == nil || err == keyring.ErrNotFound
}
