// Package ytdlp fetches source media. Local paths pass through untouched;
// anything that parses as an http(s) URL goes through the yt-dlp binary.
package ytdlp

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

type Adapter struct {
	bin string
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &Adapter{bin: binPath}
}

func (a *Adapter) Fetch(ctx context.Context, locator, destDir string) (string, error) {
	if !isURL(locator) {
		if _, err := os.Stat(locator); err != nil {
			return "", fmt.Errorf("stat input: %w", err)
		}
		return locator, nil
	}

	out := filepath.Join(destDir, "source.mp4")
	args := []string{
		"--no-playlist",
		"-f", "mp4/bestvideo[ext=mp4]+bestaudio[ext=m4a]/best",
		"-o", out,
		locator,
	}
	log.Debug().Str("bin", a.bin).Strs("args", args).Msg("fetching source")
	cmd := exec.CommandContext(ctx, a.bin, args...)
	if b, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w\n%s", err, string(b))
	}
	if _, err := os.Stat(out); err != nil {
		return "", fmt.Errorf("yt-dlp produced no file: %w", err)
	}
	return out, nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
