package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"code-darpan/internal/common"
	"code-darpan/internal/domain"
	"code-darpan/internal/port"

	logger "github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single generator call.
const DefaultTimeout = 10 * time.Second

// FallbackSummary is returned whenever the generator cannot be used.
const FallbackSummary = "✅ (Backup Mode) This project appears to be a well-structured application. " +
	"It utilizes standard naming conventions and includes essential configuration files. " +
	"The file structure suggests a clear separation of concerns, making it maintainable. " +
	"To get a real AI analysis, configure a generative model for this service."

// FallbackTips accompany FallbackSummary.
var FallbackTips = []string{
	"Add more unit tests to improve reliability.",
	"Expand the README with setup instructions.",
	"Set up a CI/CD pipeline for automation.",
}

// Fallback returns a fresh copy of the fallback insight.
func Fallback() domain.Insight {
	tips := make([]string, len(FallbackTips))
	copy(tips, FallbackTips)
	return domain.Insight{Summary: FallbackSummary, Tips: tips, Fallback: true}
}

// Advisor implements port.Advisor on top of a TextGenerator.
type Advisor struct {
	generator port.TextGenerator
	parser    ReplyParser
	timeout   time.Duration
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithTimeout sets the per-call generator timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(a *Advisor) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithParser replaces the reply parser.
func WithParser(p ReplyParser) Option {
	return func(a *Advisor) {
		if p != nil {
			a.parser = p
		}
	}
}

// NewAdvisor creates an Advisor. A nil generator always falls back.
func NewAdvisor(generator port.TextGenerator, opts ...Option) *Advisor {
	a := &Advisor{
		generator: generator,
		parser:    TextParser{},
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Advise asks the generator for a summary and tips. Every failure, including
// a timeout, degrades to Fallback.
func (a *Advisor) Advise(ctx context.Context, readme string, files []string) domain.Insight {
	insight, err := a.generate(ctx, readme, files)
	if err != nil {
		logger.Warnf("⚠️ AI error: %v. Using backup mode.", err)
		return Fallback()
	}
	return insight
}

func (a *Advisor) generate(ctx context.Context, readme string, files []string) (domain.Insight, error) {
	if a.generator == nil {
		return domain.Insight{}, common.NewError(common.ErrCodeAIProcessing, "model not loaded")
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	reply, err := a.call(callCtx, BuildPrompt(readme, files))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.Insight{}, common.WrapError(common.ErrCodeAIProcessing, fmt.Sprintf("generator timed out after %s", a.timeout), err)
		}
		return domain.Insight{}, common.WrapError(common.ErrCodeAIProcessing, "generator call failed", err)
	}

	insight, err := a.parser.Parse(reply)
	if err != nil {
		return domain.Insight{}, common.WrapError(common.ErrCodeAIProcessing, "unparsable reply", err)
	}
	return insight, nil
}

// call runs the generator but returns as soon as ctx is done, even if the
// backend ignores cancellation.
func (a *Advisor) call(ctx context.Context, prompt string) (string, error) {
	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("generator panic: %v", r)}
			}
		}()
		text, err := a.generator.Generate(ctx, prompt)
		done <- result{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
