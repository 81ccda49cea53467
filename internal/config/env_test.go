package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("LINEDROP_TEST_STR", "swift")
	if got := GetEnv("LINEDROP_TEST_STR", "classic"); got != "swift" {
		t.Errorf("GetEnv = %q, want swift", got)
	}
	if got := GetEnv("LINEDROP_TEST_UNSET", "classic"); got != "classic" {
		t.Errorf("GetEnv fallback = %q, want classic", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		set     bool
		want    int
		wantErr bool
	}{
		{"unset", "", false, 2222, false},
		{"empty", "", true, 2222, false},
		{"valid", "2323", true, 2323, false},
		{"invalid", "twenty", true, 2222, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("LINEDROP_TEST_INT", tt.value)
			}
			got, err := GetEnvInt("LINEDROP_TEST_INT", 2222)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{"empty", "", 15 * time.Second, false},
		{"valid", "3s", 3 * time.Second, false},
		{"negative", "-1s", 15 * time.Second, true},
		{"garbage", "soon", 15 * time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LINEDROP_TEST_DUR", tt.value)
			got, err := GetEnvDuration("LINEDROP_TEST_DUR", 15*time.Second)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "LINEDROP_TEST_DOTENV=lenient\nLINEDROP_TEST_KEEP=fromfile\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LINEDROP_TEST_KEEP", "fromenv")
	// Registers cleanup for the variable the file sets.
	t.Setenv("LINEDROP_TEST_DOTENV", "")
	os.Unsetenv("LINEDROP_TEST_DOTENV")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("LINEDROP_TEST_DOTENV"); got != "lenient" {
		t.Errorf("LINEDROP_TEST_DOTENV = %q, want lenient", got)
	}
	if got := os.Getenv("LINEDROP_TEST_KEEP"); got != "fromenv" {
		t.Errorf("existing variable overridden: %q", got)
	}
}
