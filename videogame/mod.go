// Package videogame implements a subject that publishes the leaks about an
// upcoming video game, and the gamers that follow it.
//
// The subject owns the severity of the latest leak, a value between 0 and 10.
// Each time a leak happens the severity is overwritten and the attached gamers
// are notified, in the order they were attached. A gamer only gets a read-only
// view of the subject and decides by itself whether it reacts.
package videogame

import (
	"math/rand"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"go.dedis.ch/gamenews"
	"go.dedis.ch/gamenews/core"
	"golang.org/x/xerrors"
)

const (
	// MinState is the lowest severity of a leak.
	MinState = 0

	// MaxState is the highest severity of a leak.
	MaxState = 10
)

// News is the read-only view of the subject handed to the observers.
type News interface {
	// GetID returns the unique identifier of the subject.
	GetID() string

	// GetState returns the severity of the latest leak.
	GetState() int
}

// Observer is the interface to implement to follow the leaks.
type Observer = core.Observer[News]

var (
	_ core.Subject[News] = (*VideoGameSubject)(nil)
	_ News               = (*VideoGameSubject)(nil)
)

type subjectTemplate struct {
	severity    func() int
	logger      zerolog.Logger
	watcherOpts []core.WatcherOption
}

// SubjectOption is the type of option to set some fields of a subject.
type SubjectOption func(*subjectTemplate)

// WithSeverity is an option to set the source of the severity of the leaks.
// The function must return a value between MinState and MaxState.
func WithSeverity(fn func() int) SubjectOption {
	return func(tmpl *subjectTemplate) {
		tmpl.severity = fn
	}
}

// WithRandom is an option to draw the severity of the leaks from the given
// source of randomness.
func WithRandom(r *rand.Rand) SubjectOption {
	return func(tmpl *subjectTemplate) {
		tmpl.severity = uniform(r)
	}
}

// WithLogger is an option to set the logger of the subject.
func WithLogger(logger zerolog.Logger) SubjectOption {
	return func(tmpl *subjectTemplate) {
		tmpl.logger = logger
	}
}

// WithIsolation is an option to keep notifying the remaining observers when one
// of them fails. The failures are returned together.
func WithIsolation() SubjectOption {
	return func(tmpl *subjectTemplate) {
		tmpl.watcherOpts = append(tmpl.watcherOpts, core.WithIsolation())
	}
}

// VideoGameSubject owns the severity of the latest leak and notifies the
// attached observers when it changes. It is meant to be used from a single
// goroutine.
//
// - implements core.Subject
// - implements videogame.News
type VideoGameSubject struct {
	id       string
	state    int
	hasState bool
	severity func() int
	watcher  *core.Watcher[News]
	logger   zerolog.Logger
}

// NewSubject creates a new subject with no observers. By default the severity
// of the leaks is drawn uniformly at random.
func NewSubject(opts ...SubjectOption) *VideoGameSubject {
	tmpl := subjectTemplate{
		severity: uniform(rand.New(rand.NewSource(time.Now().UnixNano()))),
		logger:   gamenews.Logger,
	}

	for _, opt := range opts {
		opt(&tmpl)
	}

	id := xid.New().String()

	return &VideoGameSubject{
		id:       id,
		severity: tmpl.severity,
		watcher:  core.NewWatcher[News](tmpl.watcherOpts...),
		logger:   tmpl.logger.With().Str("subject", id).Logger(),
	}
}

// GetID implements videogame.News.
func (s *VideoGameSubject) GetID() string {
	return s.id
}

// GetState implements videogame.News. It returns zero until the first leak.
func (s *VideoGameSubject) GetState() int {
	return s.state
}

// HasState returns true when the state has been set at least once.
func (s *VideoGameSubject) HasState() bool {
	return s.hasState
}

// Observers returns the attached observers in registration order.
func (s *VideoGameSubject) Observers() []Observer {
	return s.watcher.Observers()
}

// Attach implements core.Subject. The same observer can be attached several
// times, in which case it is notified as many times.
func (s *VideoGameSubject) Attach(observer Observer) {
	s.watcher.Attach(observer)
	promObservers.Inc()

	s.logger.Info().Msg("attached an observer")
}

// Detach implements core.Subject. It removes every occurrence of the observer
// and does nothing if it is not attached.
func (s *VideoGameSubject) Detach(observer Observer) {
	removed := s.watcher.Detach(observer)
	if removed == 0 {
		return
	}

	promObservers.Sub(float64(removed))

	s.logger.Info().Int("removed", removed).Msg("detached an observer")
}

// Notify implements core.Subject. It calls the observers one after each other.
// The first failure stops the notification, unless the subject was created
// with the isolation option.
func (s *VideoGameSubject) Notify() error {
	s.logger.Info().Int("observers", s.watcher.Len()).Msg("notifying observers")

	promNotifications.Inc()

	err := s.watcher.Notify(s)
	if err != nil {
		return xerrors.Errorf("failed to notify: %w", err)
	}

	return nil
}

// VideoGameContentNewsLeaked draws the severity of a new leak, stores it and
// notifies the observers.
func (s *VideoGameSubject) VideoGameContentNewsLeaked() error {
	s.logger.Info().Msg("there was a new leak for the upcoming new video game")

	err := s.setState(s.severity())
	if err != nil {
		return xerrors.Errorf("invalid severity: %v", err)
	}

	promLeaks.Inc()

	return s.Notify()
}

// ForceState overwrites the state without notifying the observers. It allows
// one to replay a known sequence of leaks.
func (s *VideoGameSubject) ForceState(state int) error {
	return s.setState(state)
}

func (s *VideoGameSubject) setState(state int) error {
	err := CheckState(state)
	if err != nil {
		return err
	}

	s.state = state
	s.hasState = true

	promState.Set(float64(state))

	s.logger.Info().Int("state", state).Msg("my state has just changed")

	return nil
}

// CheckState returns an error if the state is outside of the range of
// severities.
func CheckState(state int) error {
	if state < MinState || state > MaxState {
		return xerrors.Errorf("state %d out of range [%d, %d]", state, MinState, MaxState)
	}

	return nil
}

// uniform returns a function that draws a severity in the closed range.
func uniform(r *rand.Rand) func() int {
	return func() int {
		return MinState + r.Intn(MaxState-MinState+1)
	}
}
