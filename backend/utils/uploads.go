package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"project/backend/config"
)

// SaveUploadedFile stores a multipart file under the configured upload
// directory with a uuid-prefixed name and returns the public content URL.
// The uuid prefix keeps concurrent uploads of same-named files apart.
func SaveUploadedFile(cfg *config.Config, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.New().String() + "_" + filepath.Base(file.Filename)
	dst := filepath.Join(cfg.UploadDir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := out.ReadFrom(src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/" + filepath.ToSlash(dst), nil
}
