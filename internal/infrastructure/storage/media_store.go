package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// MediaStore persists uploaded audio under a per-patient directory layout:
// <root>/patients/<patient_id>/<filename>. Paths handed back to callers are
// relative to the root so the database rows stay portable across hosts.
type MediaStore struct {
	root string
}

func NewMediaStore(root string) (*MediaStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "staging"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &MediaStore{root: root}, nil
}

// FileName builds a storage filename from a sanitized title, falling back to
// a generated unique id when the title sanitizes to nothing.
func FileName(title, ext string) string {
	base := unsafeChars.ReplaceAllString(strings.TrimSpace(title), "_")
	base = strings.Trim(base, "._-")
	if base == "" {
		base = uuid.New().String()
	}
	return base + ext
}

// Save writes the payload under the patient's directory and returns the
// relative path and byte count.
func (s *MediaStore) Save(patientID int, filename string, r io.Reader) (string, int64, error) {
	dir := filepath.Join(s.root, "patients", fmt.Sprintf("%d", patientID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create patient directory: %w", err)
	}

	rel := filepath.Join("patients", fmt.Sprintf("%d", patientID), filename)
	f, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		return "", 0, fmt.Errorf("failed to write media file: %w", err)
	}
	return rel, size, nil
}

// StagingPath returns a unique path inside the staging area for transcode
// intermediates.
func (s *MediaStore) StagingPath(ext string) string {
	return filepath.Join(s.root, "staging", uuid.New().String()+ext)
}

// Swap replaces the file at oldRel with the staged file, stored next to the
// original under newFilename. The staged file is consumed; the original is
// removed. On failure the staged file is still cleaned up by the caller.
func (s *MediaStore) Swap(oldRel, stagedAbs, newFilename string) (string, int64, error) {
	newRel := filepath.Join(filepath.Dir(oldRel), newFilename)
	newAbs := filepath.Join(s.root, newRel)

	if err := os.Rename(stagedAbs, newAbs); err != nil {
		return "", 0, fmt.Errorf("failed to promote staged file: %w", err)
	}

	info, err := os.Stat(newAbs)
	if err != nil {
		return "", 0, err
	}

	if oldRel != newRel {
		if err := os.Remove(filepath.Join(s.root, oldRel)); err != nil && !os.IsNotExist(err) {
			return "", 0, fmt.Errorf("failed to remove original file: %w", err)
		}
	}
	return newRel, info.Size(), nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *MediaStore) Remove(rel string) error {
	err := os.Remove(filepath.Join(s.root, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Abs resolves a stored relative path to an absolute filesystem path.
func (s *MediaStore) Abs(rel string) string {
	return filepath.Join(s.root, rel)
}
