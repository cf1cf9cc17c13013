package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrFileNotFound = errors.New("file_not_found")
	ErrFileType     = errors.New("file_type_not_allowed")
)

// allowedExtensions are the upload types the service accepts; anything else
// is rejected before touching disk.
var allowedExtensions = map[string]struct{}{
	".txt": {}, ".pdf": {}, ".png": {}, ".jpg": {},
	".jpeg": {}, ".gif": {}, ".zip": {},
}

// Vault stores anonymous uploaded blobs and serves the pre-staged call
// record archives. Uploads get a timestamp-prefixed sanitized name so two
// users uploading "report.pdf" never collide.
type Vault struct {
	UploadDir   string
	DownloadDir string
}

// NewVault ensures both directories exist beneath dataDir.
func NewVault(dataDir string) (*Vault, error) {
	v := &Vault{
		UploadDir:   filepath.Join(dataDir, "uploaded_files"),
		DownloadDir: filepath.Join(dataDir, "download"),
	}
	for _, dir := range []string{v.UploadDir, v.DownloadDir} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return v, nil
}

// SaveUpload writes the uploaded content under a generated unique name and
// returns that name.
func (v *Vault) SaveUpload(filename string, r io.Reader) (string, error) {
	clean := SanitizeFilename(filename)
	if clean == "" {
		return "", ErrFileType
	}
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(clean))]; !ok {
		return "", ErrFileType
	}

	stamp := time.Now().UTC().Format("20060102150405.000000")
	stamp = strings.ReplaceAll(stamp, ".", "")
	stored := stamp + "_" + clean

	f, err := os.OpenFile(filepath.Join(v.UploadDir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0640)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return stored, nil
}

// ResolveDownload maps a requested archive size ("small", "large", ...) to
// the staged file on disk, failing with ErrFileNotFound when absent.
func (v *Vault) ResolveDownload(size string) (string, error) {
	// The size label becomes part of a path; strip anything traversal-ish.
	clean := SanitizeFilename(size)
	if clean == "" {
		return "", ErrFileNotFound
	}

	path := filepath.Join(v.DownloadDir, clean+".zip")
	if _, err := os.Stat(path); err != nil {
		return "", ErrFileNotFound
	}
	return path, nil
}

// DownloadName builds the attachment filename handed to the client,
// embedding the requesting user's id and the current timestamp.
func DownloadName(userID, size string, now time.Time) string {
	return fmt.Sprintf("%s_call_records_%s_%s.zip", userID, now.Format("2006-01-02 15-04-05"), size)
}

// SanitizeFilename reduces a client-supplied filename to a safe basename:
// path separators are dropped and anything outside [A-Za-z0-9._-] becomes
// an underscore. Returns "" when nothing usable remains.
func SanitizeFilename(name string) string {
	// Take the basename under both separator conventions.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	clean := strings.Trim(b.String(), "._")
	if clean == "" || strings.Trim(clean, ".") == "" {
		return ""
	}
	return clean
}
