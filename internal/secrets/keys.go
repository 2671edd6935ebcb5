package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// "Service" groups this app's secrets in the OS keychain.
	KeyringService = "jobradar"

	SearchAccount   = "jobradar:serpapi"
	AirtableAccount = "jobradar:airtable"
)

var ErrNoSearchKey = errors.New("search API key not found (store one in the keychain or set SERPAPI_KEY / GOOGLE_API_KEY)")

// ResolveSearchKey returns the SerpAPI key with documented precedence:
// explicit argument > OS keyring > SERPAPI_KEY > GOOGLE_API_KEY.
func ResolveSearchKey(explicit string) (string, error) {
	if k := strings.TrimSpace(explicit); k != "" {
		return k, nil
	}
	if pw, err := keyring.Get(KeyringService, SearchAccount); err == nil && strings.TrimSpace(pw) != "" {
		return strings.TrimSpace(pw), nil
	}
	for _, env := range []string{"SERPAPI_KEY", "GOOGLE_API_KEY"} {
		if k := strings.TrimSpace(os.Getenv(env)); k != "" {
			return k, nil
		}
	}
	return "", ErrNoSearchKey
}

// ResolveAirtableKey is best-effort: a missing key disables the client
// directory instead of failing, so no error here.
func ResolveAirtableKey() string {
	if pw, err := keyring.Get(KeyringService, AirtableAccount); err == nil && strings.TrimSpace(pw) != "" {
		return strings.TrimSpace(pw)
	}
	return strings.TrimSpace(os.Getenv("AIRTABLE_API_KEY"))
}

func Set(account, value string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
