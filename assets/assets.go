// Package assets locates and loads the optional centre logo.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/dotqr/layout"
)

// LogosDir is the conventional directory searched for logos by file name.
const LogosDir = "Logos"

// parentLevels is how many parents of BaseDir are searched for LogosDir.
const parentLevels = 3

// Resolver finds logo files relative to the application and working
// directories.
type Resolver struct {
	BaseDir string
	WorkDir string
}

// NewResolver roots a resolver at the executable's directory and the current
// working directory. Either may be empty when it cannot be determined.
func NewResolver() Resolver {
	var r Resolver
	if exe, err := os.Executable(); err == nil {
		r.BaseDir = filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		r.WorkDir = wd
	}
	return r
}

// Candidates lists the paths tried for p, first match wins: p itself when
// absolute; p under BaseDir; Logos/<name> under BaseDir and up to three of
// its parents; p under WorkDir; Logos/<name> under WorkDir. An absolute p
// still falls back to the Logos/<name> lookups, so a path written on another
// machine resolves against the local Logos directory.
func (r Resolver) Candidates(p string) []string {
	if p == "" {
		return nil
	}
	abs := filepath.IsAbs(p)
	name := filepath.Base(p)
	var out []string
	if abs {
		out = append(out, p)
	}
	if r.BaseDir != "" {
		if !abs {
			out = append(out, filepath.Join(r.BaseDir, p))
		}
		dir := r.BaseDir
		for i := 0; i <= parentLevels; i++ {
			out = append(out, filepath.Join(dir, LogosDir, name))
			dir = filepath.Join(dir, "..")
		}
	}
	if r.WorkDir != "" {
		if !abs {
			out = append(out, filepath.Join(r.WorkDir, p))
		}
		out = append(out, filepath.Join(r.WorkDir, LogosDir, name))
	}
	return out
}

// Resolve returns the first existing regular file among Candidates(p).
func (r Resolver) Resolve(p string) (string, bool) {
	for _, c := range r.Candidates(p) {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			abs, err := filepath.Abs(c)
			if err != nil {
				return c, true
			}
			return abs, true
		}
	}
	return "", false
}

// MIMEType maps a logo file extension to its MIME type, defaulting to PNG.
func MIMEType(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}

// LoadLogo reads the logo at path and checks that it decodes as an image.
func LoadLogo(path string) (*layout.Logo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logo %s: %w", path, err)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("decode logo %s: %w", path, err)
	}
	return &layout.Logo{Path: path, MIME: MIMEType(path), Data: data}, nil
}
