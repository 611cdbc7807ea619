package scenario

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"go.dedis.ch/gamenews"
	"go.dedis.ch/gamenews/videogame"
	"golang.org/x/xerrors"
)

// RunnerOption is the type of option to set some fields of a runner.
type RunnerOption func(*Runner)

// WithSubjectOptions is an option to set the options of the subject created
// for each run.
func WithSubjectOptions(opts ...videogame.SubjectOption) RunnerOption {
	return func(r *Runner) {
		r.subjectOpts = append(r.subjectOpts, opts...)
	}
}

// WithLogger is an option to set the logger of the runner. It is also given to
// the subject and the gamers.
func WithLogger(logger zerolog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// Runner plays scripts. Each run creates a new subject and new gamers that
// write their reactions to the same output.
type Runner struct {
	out         io.Writer
	logger      zerolog.Logger
	subjectOpts []videogame.SubjectOption
}

// NewRunner creates a runner that writes the reactions of the gamers to the
// writer.
func NewRunner(out io.Writer, opts ...RunnerOption) Runner {
	r := Runner{
		out:    out,
		logger: gamenews.Logger,
	}

	for _, opt := range opts {
		opt(&r)
	}

	return r
}

// Run validates the script and plays its steps in order. It stops at the first
// step that fails or when the context is done.
func (r Runner) Run(ctx context.Context, script Script) error {
	err := script.Validate()
	if err != nil {
		return xerrors.Errorf("invalid script: %v", err)
	}

	opts := append([]videogame.SubjectOption{videogame.WithLogger(r.logger)}, r.subjectOpts...)
	subject := videogame.NewSubject(opts...)

	gamers := make(map[string]videogame.Observer, len(script.Gamers))
	for _, g := range script.Gamers {
		gamers[g.Name] = r.newGamer(g.Kind)
	}

	r.logger.Info().
		Str("subject", subject.GetID()).
		Int("steps", len(script.Steps)).
		Msg("playing script")

	for i, step := range script.Steps {
		select {
		case <-ctx.Done():
			return xerrors.Errorf("step %d: %v", i, ctx.Err())
		default:
		}

		err := play(subject, gamers, step)
		if err != nil {
			return xerrors.Errorf("step %d: %v", i, err)
		}
	}

	return nil
}

func (r Runner) newGamer(kind string) videogame.Observer {
	opt := videogame.WithGamerLogger(r.logger)

	if kind == KindPro {
		return videogame.NewProGamer(r.out, opt)
	}

	return videogame.NewCasualGamer(r.out, opt)
}

func play(subject *videogame.VideoGameSubject, gamers map[string]videogame.Observer, step Step) error {
	switch {
	case step.Attach != "":
		subject.Attach(gamers[step.Attach])
	case step.Detach != "":
		subject.Detach(gamers[step.Detach])
	case step.Leak != nil && step.Leak.State != nil:
		err := subject.ForceState(*step.Leak.State)
		if err != nil {
			return xerrors.Errorf("failed to force state: %v", err)
		}

		return subject.Notify()
	case step.Leak != nil:
		return subject.VideoGameContentNewsLeaked()
	case step.Notify != nil:
		return subject.Notify()
	}

	return nil
}
