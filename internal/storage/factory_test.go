package storage

import (
	"context"
	"testing"

	"vidmark/internal/config"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.StorageConfig
		provider string
		wantErr  bool
	}{
		{"default is localfs", config.StorageConfig{LocalRoot: t.TempDir()}, "localfs", false},
		{"localfs", config.StorageConfig{Provider: "localfs", LocalRoot: t.TempDir()}, "localfs", false},
		{"s3", config.StorageConfig{Provider: "s3", S3Region: "us-east-1"}, "s3", false},
		{"gdrive without credentials", config.StorageConfig{Provider: "gdrive"}, "", true},
		{"gdrive", config.StorageConfig{
			Provider:           "gdrive",
			GDriveClientID:     "id",
			GDriveClientSecret: "secret",
			GDriveRefreshToken: "refresh",
		}, "gdrive", false},
		{"unknown", config.StorageConfig{Provider: "ftp"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp, err := NewProvider(context.Background(), tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && sp.Provider() != tt.provider {
				t.Errorf("expected provider %s, got %s", tt.provider, sp.Provider())
			}
		})
	}
}
