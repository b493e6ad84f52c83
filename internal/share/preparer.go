package share

import (
	"context"
	"errors"

	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/stat"
)

var ErrPrepare = errors.New("failed to prepare share image")

// Renderer is the opaque collaborator that turns a shareable roster into
// PNG bytes. Rendering is expensive and failable.
type Renderer interface {
	Render(ctx context.Context, mode stat.Mode, teams []game.Team) ([]byte, error)
}

// Job identifies one preparation attempt. Tokens are monotonic; only the
// newest token's result is ever accepted, which makes rapid re-triggers
// last-writer-wins without any locking.
type Job struct {
	Token uint64
	Mode  stat.Mode
	Teams []game.Team
}

// Preparer owns the single-entry image cache. All methods are called from
// the UI event loop; renders themselves run elsewhere and come back through
// Accept with their token.
type Preparer struct {
	renderer  Renderer
	token     uint64
	signature string
	image     []byte
	preparing bool
	failed    bool
}

func NewPreparer(renderer Renderer) *Preparer {
	return &Preparer{renderer: renderer}
}

// Start computes the signature for the current inputs and decides whether a
// render is needed. A cached image under the same signature is served as-is.
// Any other outcome eagerly drops the cached image so a stale one can never
// be handed out during the regeneration window.
func (p *Preparer) Start(mode stat.Mode, teams []game.Team, sel Selection) (Job, bool) {
	signature := Signature(mode, teams, sel)
	if signature == p.signature && p.image != nil {
		p.preparing = false

		return Job{}, false
	}

	p.token++
	p.signature = signature
	p.image = nil
	p.preparing = true

	return Job{
		Token: p.token,
		Mode:  mode,
		Teams: Roster(teams, sel),
	}, true
}

// Render executes a job. Safe to call from a goroutine; it touches no
// preparer state.
func (p *Preparer) Render(ctx context.Context, job Job) ([]byte, error) {
	image, err := p.renderer.Render(ctx, job.Mode, job.Teams)
	if err != nil {
		return nil, errors.Join(err, ErrPrepare)
	}

	return image, nil
}

// Accept installs a finished render if its token is still current. Results
// from superseded jobs are discarded. Returns true when the cache changed.
func (p *Preparer) Accept(token uint64, image []byte, err error) bool {
	if token != p.token {
		return false
	}

	p.preparing = false
	if err != nil {
		// Sticky until the next successful attempt.
		p.failed = true
		p.image = nil

		return true
	}

	p.failed = false
	p.image = image

	return true
}

// Invalidate drops the cache and soft-cancels any in-flight job. Called on
// every transition that can change the signature and when the share sheet
// closes.
func (p *Preparer) Invalidate() {
	p.token++
	p.signature = ""
	p.image = nil
	p.preparing = false
	p.failed = false
}

// Image returns the prepared bytes when the cache is ready.
func (p *Preparer) Image() ([]byte, bool) {
	if p.image == nil {
		return nil, false
	}

	return p.image, true
}

// Preparing reports whether a render is still in flight.
func (p *Preparer) Preparing() bool { return p.preparing }

// Failed reports the sticky prepare-error flag. A share attempted in this
// state retries the render synchronously instead of blocking forever.
func (p *Preparer) Failed() bool { return p.failed }
