package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gyeh/apptbill/internal/model"
)

func TestLoadFromFile_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("output_format: xlsx\noutput_dir: out\nmax_upload_bytes: 1024\nlog_level: debug\n"), 0644)

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.OutputFormat != "xlsx" || c.OutputDir != "out" || c.MaxUploadBytes != 1024 || c.LogLevel != "debug" {
		t.Errorf("unexpected config: %+v", c)
	}
}

func TestLoadFromFile_FlagsWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("output_format: xlsx\n"), 0644)

	c := Config{OutputFormat: "parquet"}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.OutputFormat != "parquet" {
		t.Errorf("flag value overwritten: %q", c.OutputFormat)
	}
}

func TestLoadFromFile_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("output_format: json\n"), 0644)

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	if err := c.LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOutput(t *testing.T) {
	tests := []struct {
		cfg        Config
		wantPath   string
		wantFormat model.Format
		wantErr    bool
	}{
		{Config{}, "transformed_output.csv", model.FormatCSV, false},
		{Config{OutputDir: "out", OutputFormat: "xlsx"}, filepath.Join("out", "transformed_output.xlsx"), model.FormatXLSX, false},
		{Config{OutPath: "billing.parquet"}, "billing.parquet", model.FormatParquet, false},
		{Config{OutPath: "billing.dat", OutputFormat: "csv"}, "billing.dat", model.FormatCSV, false},
		{Config{OutPath: "billing.dat"}, "", "", true},
	}
	for _, tt := range tests {
		path, format, err := tt.cfg.Output()
		if (err != nil) != tt.wantErr || path != tt.wantPath || format != tt.wantFormat {
			t.Errorf("Output(%+v) = %q, %q, %v", tt.cfg, path, format, err)
		}
	}
}

func TestValidate(t *testing.T) {
	var c Config
	if err := c.Validate(); err == nil {
		t.Error("expected error without --file")
	}

	dir := t.TempDir()
	c.FilePath = filepath.Join(dir, "export.csv")
	if err := c.Validate(); err == nil {
		t.Error("expected error for missing file")
	}

	os.WriteFile(c.FilePath, []byte("Client Name\n"), 0644)
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUploadLimit(t *testing.T) {
	if got := (&Config{}).UploadLimit(); got != DefaultMaxUploadBytes {
		t.Errorf("default limit = %d", got)
	}
	if got := (&Config{MaxUploadBytes: 10}).UploadLimit(); got != 10 {
		t.Errorf("limit = %d", got)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("APPTBILL_TEST_VALUE", "set")
	if got := EnvOr("APPTBILL_TEST_VALUE", "def"); got != "set" {
		t.Errorf("EnvOr = %q", got)
	}
	if got := EnvOr("APPTBILL_TEST_UNSET", "def"); got != "def" {
		t.Errorf("EnvOr unset = %q", got)
	}
}
