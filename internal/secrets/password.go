package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups the app's secrets in the OS keychain.
	KeyringService = "jobsearch"
)

var ErrNoPassword = errors.New("LinkedIn password not found (set it in keychain or via LINKEDIN_PASSWORD)")

func GetLinkedInPassword(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", ErrNoPassword
	}
	pw, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(pw) == "" {
		return "", ErrNoPassword
	}
	return pw, nil
}

func SetLinkedInPassword(account, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

func DeleteLinkedInPassword(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

// KeyringAccount is the keychain entry for a LinkedIn login.
func KeyringAccount(identifier string) string {
	return "linkedin:" + strings.ToLower(strings.TrimSpace(identifier))
}
