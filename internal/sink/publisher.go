package sink

import (
	"log/slog"
	"sync"

	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Publisher fans a result out to the message log and the data-validation
// target. Publishing the same result twice re-renders the message log but
// records its verdicts once.
type Publisher struct {
	log    MessageLog
	target Target
	logger *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewPublisher creates a publisher. Either collaborator may be nil.
func NewPublisher(log MessageLog, target Target, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		log:    log,
		target: target,
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Publish delivers result and reports whether its verdicts were recorded
// now. The message log is written on every call; the target records a
// result's verdicts only the first time its ID is published. Collaborator
// errors are joined and returned.
func (p *Publisher) Publish(result *validator.ValidationResult) (bool, error) {
	if result == nil {
		return false, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.log != nil {
		if err := p.log.Write(Entries(result)); err != nil {
			errs = append(errs, errors.Wrap(err, "writing message log"))
		}
	}

	if _, done := p.seen[result.ID]; done {
		p.logger.Debug("result already recorded", "id", result.ID)
		return false, errors.Join(errs...)
	}
	p.seen[result.ID] = struct{}{}

	if p.target != nil {
		for _, a := range result.Assets {
			verdict := VerdictFor(a, result.Threshold)
			if err := p.target.Record(a.Path, verdict, Issues(a)); err != nil {
				errs = append(errs, errors.Wrapf(err, "recording verdict for %s", a.Path))
			}
		}
	}

	p.logger.Debug("result published", "id", result.ID, "assets", len(result.Assets), "errors", len(errs))
	return true, errors.Join(errs...)
}
