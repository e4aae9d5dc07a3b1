package migrations

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSQLFilesOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"010_files.sql", "001_init.sql", "002_index.sql", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("-- noop"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700); err != nil {
		t.Fatal(err)
	}

	got, err := SQLFiles(dir)
	if err != nil {
		t.Fatalf("SQLFiles() error = %v", err)
	}
	want := []string{"001_init.sql", "002_index.sql", "010_files.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SQLFiles() = %v, want %v", got, want)
	}
}

func TestSQLFilesMissingDir(t *testing.T) {
	if _, err := SQLFiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("SQLFiles() expected an error for a missing directory")
	}
}

func TestShippedMigrationsDeclareConstraints(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	if err != nil {
		t.Skipf("migrations not found: %v", err)
	}
	for _, name := range []string{"events_luma_event_id_key", "event_users_event_id_email_key"} {
		if !strings.Contains(string(content), name) {
			t.Errorf("001_init.sql does not declare %s", name)
		}
	}
}
