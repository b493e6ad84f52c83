// Package render rasterizes a box score into PNG bytes using a headless
// Chrome. The markup is built locally and handed over as a data URL, so the
// browser never touches the network.
package render

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/stat"
)

const (
	renderTimeout = 30 * time.Second
	viewportWidth = 760
	// Rendered at 2x device scale so the shared image stays crisp on phone
	// screens.
	deviceScale = 2.0
)

var ErrRender = errors.New("failed to render box score")

// Chrome renders through either a remote debugging endpoint or a locally
// spawned headless browser.
type Chrome struct {
	remoteURL string
}

// NewChrome returns a renderer. An empty remoteURL means a local headless
// Chrome is started per render.
func NewChrome(remoteURL string) *Chrome {
	return &Chrome{remoteURL: remoteURL}
}

// Render implements share.Renderer.
func (c *Chrome) Render(ctx context.Context, mode stat.Mode, teams []game.Team) ([]byte, error) {
	markup, errMarkup := boxScoreHTML(mode, teams)
	if errMarkup != nil {
		return nil, errors.Join(errMarkup, ErrRender)
	}

	allocCtx, cancelAlloc := c.allocator(ctx)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, renderTimeout)
	defer cancelRun()

	started := time.Now()

	var image []byte
	err := chromedp.Run(runCtx,
		chromedp.EmulateViewport(viewportWidth, 0, chromedp.EmulateScale(deviceScale)),
		chromedp.Navigate("data:text/html;base64,"+base64.StdEncoding.EncodeToString([]byte(markup))),
		chromedp.WaitReady("body"),
		chromedp.FullScreenshot(&image, 100),
	)
	if err != nil {
		return nil, errors.Join(err, ErrRender)
	}

	slog.Debug("Rendered box score",
		slog.Int("bytes", len(image)),
		slog.Duration("took", time.Since(started)))

	return image, nil
}

func (c *Chrome) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.remoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, c.remoteURL)
	}

	return chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
}
