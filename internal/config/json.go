package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from a JSON string such as
// "30s" or "720h".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("error parsing duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// structuredJSONConfig mirrors [StructuredConfig] with Duration fields
// swapped for the string-parsing JSON variant.
type structuredJSONConfig struct {
	App struct {
		Name     string `json:"name"`
		Version  string `json:"version"`
		Mode     string `json:"mode"`
		ClientID string `json:"client_id"`
	} `json:"app,omitempty"`

	Auth struct {
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenAudience   string   `json:"token_audience"`
		TokenDuration   Duration `json:"token_duration"`
		SessionDuration Duration `json:"session_duration"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Blob struct {
			Endpoint      string `json:"endpoint"`
			Region        string `json:"region"`
			Bucket        string `json:"bucket"`
			AccessKey     string `json:"access_key"`
			SecretKey     string `json:"secret_key"`
			PublicBaseURL string `json:"public_base_url"`
		} `json:"blob,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg structuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Name:     jsonCfg.App.Name,
			Version:  jsonCfg.App.Version,
			Mode:     jsonCfg.App.Mode,
			ClientID: jsonCfg.App.ClientID,
		},
		Auth: Auth{
			TokenSignKey:    jsonCfg.Auth.TokenSignKey,
			TokenIssuer:     jsonCfg.Auth.TokenIssuer,
			TokenAudience:   jsonCfg.Auth.TokenAudience,
			TokenDuration:   time.Duration(jsonCfg.Auth.TokenDuration),
			SessionDuration: time.Duration(jsonCfg.Auth.SessionDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Blob: Blob{
				Endpoint:      jsonCfg.Storage.Blob.Endpoint,
				Region:        jsonCfg.Storage.Blob.Region,
				Bucket:        jsonCfg.Storage.Blob.Bucket,
				AccessKey:     jsonCfg.Storage.Blob.AccessKey,
				SecretKey:     jsonCfg.Storage.Blob.SecretKey,
				PublicBaseURL: jsonCfg.Storage.Blob.PublicBaseURL,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}, nil
}
