// Package upload stores multipart image files under the configured upload
// directory with collision-free names.
package upload

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Save writes the uploaded file into dir and returns the stored relative
// filename. Only common image extensions are accepted.
func Save(c *fiber.Ctx, file *multipart.FileHeader, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExts[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a previously stored file, ignoring files that are already
// gone.
func Remove(dir, name string) {
	if name == "" {
		return
	}
	_ = os.Remove(filepath.Join(dir, name))
}
