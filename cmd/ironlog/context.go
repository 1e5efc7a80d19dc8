package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"ironlog/workout-app/internal/client"
)

const defaultServer = "http://localhost:8080"

// credentials is the saved login state, one server and token per user.
type credentials struct {
	Server string `json:"server"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type commandContext struct {
	serverFlag *string

	credsOnce sync.Once
	creds     credentials
	credsErr  error
}

func newCommandContext(serverFlag *string) *commandContext {
	return &commandContext{serverFlag: serverFlag}
}

func credentialsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(configDir, "ironlog", "credentials.json"), nil
}

func (c *commandContext) loadCredentials() (credentials, error) {
	c.credsOnce.Do(func() {
		path, err := credentialsPath()
		if err != nil {
			c.credsErr = err
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return
			}
			c.credsErr = fmt.Errorf("reading credentials: %w", err)
			return
		}
		if err := json.Unmarshal(data, &c.creds); err != nil {
			c.credsErr = fmt.Errorf("parsing credentials: %w", err)
		}
	})
	return c.creds, c.credsErr
}

func (c *commandContext) saveCredentials(creds credentials) error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	c.creds = creds
	return nil
}

func (c *commandContext) clearCredentials() error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	c.creds = credentials{}
	return nil
}

// serverURL resolves the API base URL: flag, then saved credentials, then the
// local default.
func (c *commandContext) serverURL() string {
	if c.serverFlag != nil {
		if flag := strings.TrimSpace(*c.serverFlag); flag != "" {
			return strings.TrimRight(flag, "/")
		}
	}
	creds, _ := c.loadCredentials()
	if creds.Server != "" {
		return creds.Server
	}
	return defaultServer
}

// anonClient builds a client without a token, for the auth commands.
func (c *commandContext) anonClient() *client.Client {
	return client.New(c.serverURL(), "")
}

// apiClient builds an authenticated client from the saved credentials.
func (c *commandContext) apiClient() (*client.Client, error) {
	creds, err := c.loadCredentials()
	if err != nil {
		return nil, err
	}
	if creds.Token == "" {
		return nil, errors.New("not logged in; run 'ironlog login' first")
	}
	return client.New(c.serverURL(), creds.Token), nil
}
