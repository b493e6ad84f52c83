// Package export hands a prepared box-score image to the outside world:
// either through a user-configured share command or, failing that, by saving
// the PNG into the downloads directory.
package export

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/adrg/xdg"
)

var (
	ErrShare = errors.New("share command failed")
	ErrSave  = errors.New("failed to save image")
)

// Slugify lowercases and collapses whitespace runs to single hyphens.
func Slugify(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(value))), "-")
}

// Filename derives the saved file name from the team labels, e.g.
// "ballers-vs-bricks-box-score.png". Empty labels collapse to "game".
func Filename(labels []string) string {
	var slugs []string
	for _, label := range labels {
		if slug := Slugify(label); slug != "" {
			slugs = append(slugs, slug)
		}
	}

	base := strings.Join(slugs, "-vs-")
	if base == "" {
		base = "game"
	}

	return base + "-box-score.png"
}

// Exporter is the share collaborator. The command is optional; saving is the
// universal fallback.
type Exporter struct {
	command string
	saveDir string
}

// New returns an exporter. An empty saveDir falls back to the XDG user
// download directory.
func New(command string, saveDir string) Exporter {
	if saveDir == "" {
		saveDir = xdg.UserDirs.Download
	}

	return Exporter{command: command, saveDir: saveDir}
}

// CanShare reports whether an external share command is configured.
func (e Exporter) CanShare() bool {
	return e.command != ""
}

// Save writes the image under the derived filename and returns the full
// path.
func (e Exporter) Save(image []byte, labels []string) (string, error) {
	if err := os.MkdirAll(e.saveDir, 0o750); err != nil {
		return "", errors.Join(err, ErrSave)
	}

	target := path.Join(e.saveDir, Filename(labels))
	if err := os.WriteFile(target, image, 0o640); err != nil {
		return "", errors.Join(err, ErrSave)
	}

	return target, nil
}

// Share saves the image and invokes the configured command with the title
// and the file path. Callers fall back to plain Save when this fails.
func (e Exporter) Share(ctx context.Context, title string, image []byte, labels []string) (string, error) {
	target, errSave := e.Save(image, labels)
	if errSave != nil {
		return "", errSave
	}

	cmd := exec.CommandContext(ctx, e.command, title, target)
	if output, err := cmd.CombinedOutput(); err != nil {
		return target, errors.Join(errors.New(strings.TrimSpace(string(output))), err, ErrShare)
	}

	return target, nil
}
