package googleauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrUnavailable means no credential source yielded a payload.
	ErrUnavailable = errors.New("credential unavailable")
	// ErrInvalid means a payload was found but is not a service account key.
	ErrInvalid = errors.New("credential invalid")
)

// DefaultKeyPath is where the key is looked up when neither an inline
// payload nor an explicit path is given.
const DefaultKeyPath = "service-account.json"

// Scopes required against the document store.
var Scopes = []string{
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/documents",
}

// Credential is the resolved service identity. Downstream components treat
// it as opaque and only hand the raw payload to SDK options.
type Credential struct {
	Email     string
	ProjectID string
	raw       []byte
}

type keyFile struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	ProjectID   string `json:"project_id"`
}

// Resolve produces the one credential for a run. Precedence: inline payload,
// explicit path, DefaultKeyPath.
func Resolve(inline []byte, path string) (*Credential, error) {
	if len(inline) > 0 {
		return parse(inline)
	}
	if path == "" {
		path = DefaultKeyPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Credential, error) {
	var k keyFile
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if k.Type != "service_account" || k.ClientEmail == "" || k.PrivateKey == "" || k.ProjectID == "" {
		return nil, fmt.Errorf("%w: payload is not a service account key", ErrInvalid)
	}
	return &Credential{Email: k.ClientEmail, ProjectID: k.ProjectID, raw: data}, nil
}

// JSON returns the raw key payload for SDK client options.
func (c *Credential) JSON() []byte { return c.raw }
