package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups this app's secrets in the OS keychain.
	KeyringService = "apptrack"
	tokenAccount   = "apptrack:api-token"
)

// GetAPIToken returns the token guarding mutating HTTP endpoints. An empty
// keychain is not an error to the caller deciding whether auth is enabled;
// they should treat a missing token as "auth disabled".
func GetAPIToken() (string, error) {
	tok, err := keyring.Get(KeyringService, tokenAccount)
	if err == nil && strings.TrimSpace(tok) != "" {
		return tok, nil
	}
	return "", errors.New("API token not found in keychain")
}

func SetAPIToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, tokenAccount, token)
}

// DeleteAPIToken clears the token. Deleting an absent token is a no-op.
func DeleteAPIToken() error {
	err := keyring.Delete(KeyringService, tokenAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
