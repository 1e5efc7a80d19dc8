package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
server:
  address: ":9090"
database:
  uri: "mongodb://db.example:27017"
  name: "ironlog_test"
jwt:
  secret: "test-secret"
  expiration: "45m"
s3:
  bucket_name: "ironlog-media"
  use_ssl: false
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// TestLoadConfigFromFile verifies that a well-formed YAML config loads with
// all fields populated, including the duration string.
func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(writeTempConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("server.address = %q, want %q", cfg.Server.Address, ":9090")
	}
	if cfg.Database.URI != "mongodb://db.example:27017" {
		t.Errorf("database.uri = %q, want %q", cfg.Database.URI, "mongodb://db.example:27017")
	}
	if cfg.Database.Name != "ironlog_test" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "ironlog_test")
	}
	if cfg.JWT.Secret != "test-secret" {
		t.Errorf("jwt.secret = %q, want %q", cfg.JWT.Secret, "test-secret")
	}
	if cfg.JWT.Expiration != 45*time.Minute {
		t.Errorf("jwt.expiration = %v, want 45m", cfg.JWT.Expiration)
	}
	if cfg.S3.BucketName != "ironlog-media" {
		t.Errorf("s3.bucket_name = %q, want %q", cfg.S3.BucketName, "ironlog-media")
	}
	if cfg.S3.UseSSL {
		t.Error("s3.use_ssl = true, want false")
	}
}

// TestLoadConfigDefaults verifies that a missing config file falls back to
// defaults instead of failing.
func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("server.address = %q, want %q", cfg.Server.Address, ":8080")
	}
	if cfg.Database.Name != "ironlog" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "ironlog")
	}
	if cfg.JWT.Expiration != time.Hour {
		t.Errorf("jwt.expiration = %v, want 1h", cfg.JWT.Expiration)
	}
}
