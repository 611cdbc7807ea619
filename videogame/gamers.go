package videogame

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"go.dedis.ch/gamenews"
	"golang.org/x/xerrors"
)

// CasualThreshold is the severity under which a casual gamer reacts.
const CasualThreshold = 3

const (
	// ProReaction is the line printed by a pro gamer when it reacts.
	ProReaction = "ProGamer: Professionally reacted to the event"

	// CasualReaction is the line printed by a casual gamer when it reacts.
	CasualReaction = "CasualGamer: Casually reacted to the event"
)

// GamerOption is the type of option to set some fields of a gamer.
type GamerOption func(*gamer)

// WithGamerLogger is an option to set the logger of a gamer.
func WithGamerLogger(logger zerolog.Logger) GamerOption {
	return func(g *gamer) {
		g.logger = logger
	}
}

// gamer holds what is common to the kinds of gamers: where the reactions are
// written.
type gamer struct {
	kind   string
	out    io.Writer
	logger zerolog.Logger
}

func newGamer(kind string, out io.Writer, opts []GamerOption) gamer {
	g := gamer{
		kind:   kind,
		out:    out,
		logger: gamenews.Logger,
	}

	for _, opt := range opts {
		opt(&g)
	}

	g.logger = g.logger.With().Str("gamer", kind).Logger()

	return g
}

func (g gamer) react(news News, line string) error {
	_, err := fmt.Fprintln(g.out, line)
	if err != nil {
		return xerrors.Errorf("failed to react: %v", err)
	}

	promReactions.WithLabelValues(g.kind).Inc()

	g.logger.Debug().
		Str("subject", news.GetID()).
		Int("state", news.GetState()).
		Msg("reacted")

	return nil
}

// ProGamer follows every leak, no matter how small.
//
// - implements videogame.Observer
type ProGamer struct {
	gamer
}

// NewProGamer creates a pro gamer that writes its reactions to the writer.
func NewProGamer(out io.Writer, opts ...GamerOption) *ProGamer {
	return &ProGamer{
		gamer: newGamer("pro", out, opts),
	}
}

// Update implements videogame.Observer. It always reacts.
func (g *ProGamer) Update(news News) error {
	return g.react(news, ProReaction)
}

// CasualGamer only follows the leaks with a low severity value.
//
// - implements videogame.Observer
type CasualGamer struct {
	gamer
}

// NewCasualGamer creates a casual gamer that writes its reactions to the
// writer.
func NewCasualGamer(out io.Writer, opts ...GamerOption) *CasualGamer {
	return &CasualGamer{
		gamer: newGamer("casual", out, opts),
	}
}

// Update implements videogame.Observer. It reacts only if the state is lower
// than the threshold.
func (g *CasualGamer) Update(news News) error {
	if news.GetState() >= CasualThreshold {
		return nil
	}

	return g.react(news, CasualReaction)
}
