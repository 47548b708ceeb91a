package sink

import (
	"context"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/session"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Provider answers the host's per-asset validation requests by running a
// check-only session over the single asset and publishing the result.
type Provider struct {
	session   *session.Session
	opts      session.Options
	publisher *Publisher
}

// NewProvider creates a provider. Mode and trigger of opts are forced to a
// check-only validate run; a nil publisher skips publishing.
func NewProvider(s *session.Session, opts session.Options, publisher *Publisher) *Provider {
	opts.Mode = session.ModeCheckOnly
	opts.Trigger = 0
	return &Provider{session: s, opts: opts, publisher: publisher}
}

// Validate checks one asset and returns its verdict with the full result.
func (p *Provider) Validate(ctx context.Context, h asset.Handle) (Verdict, *validator.ValidationResult, error) {
	result, err := p.session.Run(ctx, []asset.Handle{h}, p.opts)
	if err != nil {
		return NotValidated, nil, errors.Wrapf(err, "validating %s", h.Path)
	}

	if p.publisher != nil {
		if _, err := p.publisher.Publish(result); err != nil {
			return NotValidated, result, err
		}
	}

	a, ok := result.Asset(h.Path)
	if !ok {
		return NotValidated, result, nil
	}
	return VerdictFor(a, result.Threshold), result, nil
}
