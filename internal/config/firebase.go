package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// FirebaseConfig describes how to reach the Firebase project. Credentials come
// from the environment when all three values are set, otherwise from the
// service-account JSON file on disk.
type FirebaseConfig struct {
	ProjectID       string
	ClientEmail     string
	PrivateKey      string
	CredentialsFile string
	DatabaseURL     string
}

// Credentials is the resolved service-account identity.
type Credentials struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// Resolve returns the service-account credentials. Environment variables win;
// the credentials file is the fallback. Escaped newlines in the private key
// (common when the key is stored in an env var) are normalized.
func (c FirebaseConfig) Resolve() (*Credentials, error) {
	if c.ProjectID != "" && c.ClientEmail != "" && c.PrivateKey != "" {
		return &Credentials{
			ProjectID:   c.ProjectID,
			ClientEmail: c.ClientEmail,
			PrivateKey:  normalizeKey(c.PrivateKey),
		}, nil
	}

	data, err := os.ReadFile(c.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.CredentialsFile, err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", c.CredentialsFile, err)
	}
	if creds.ProjectID == "" || creds.ClientEmail == "" || creds.PrivateKey == "" {
		return nil, fmt.Errorf("incomplete service account in %s", c.CredentialsFile)
	}
	creds.PrivateKey = normalizeKey(creds.PrivateKey)
	return &creds, nil
}

// ServiceAccountJSON renders the credentials in the shape the Firebase Admin
// SDK expects from option.WithCredentialsJSON.
func (cr *Credentials) ServiceAccountJSON() []byte {
	b, _ := json.Marshal(struct {
		Type string `json:"type"`
		Credentials
	}{Type: "service_account", Credentials: *cr})
	return b
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
