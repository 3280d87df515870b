package authentication

// Credentials for the record store kept in the OS keyring, on the operator side.
import (
	"encoding/json"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "bibliobot-cli"
	tokenKey    = "airtable_credentials"
)

type StoredCredentials struct {
	APIKey   string `json:"api_key"`
	BaseID   string `json:"base_id,omitempty"`
	StoredAt int64  `json:"stored_at"`
}

func StoreCredentials(creds *StoredCredentials) error {
	if creds.StoredAt == 0 {
		creds.StoredAt = time.Now().Unix()
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return keyring.Set(serviceName, tokenKey, string(data))
}

func GetCredentials() (*StoredCredentials, error) {
	value, err := keyring.Get(serviceName, tokenKey)
	if err != nil {
		return nil, err
	}

	var creds StoredCredentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func DeleteCredentials() error {
	return keyring.Delete(serviceName, tokenKey)
}
