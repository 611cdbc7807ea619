package videogame

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/gamenews/testing/fake"
)

func TestProGamer_Update(t *testing.T) {
	out := new(bytes.Buffer)
	gamer := NewProGamer(out, WithGamerLogger(zerolog.Nop()))

	before := testutil.ToFloat64(promReactions.WithLabelValues("pro"))

	for state := MinState; state <= MaxState; state++ {
		out.Reset()

		err := gamer.Update(fakeNews{state: state})
		require.NoError(t, err)
		require.Equal(t, ProReaction+"\n", out.String())
	}

	require.Equal(t, before+MaxState-MinState+1,
		testutil.ToFloat64(promReactions.WithLabelValues("pro")))
}

func TestProGamer_UpdateFailure(t *testing.T) {
	gamer := NewProGamer(badWriter{}, WithGamerLogger(zerolog.Nop()))

	err := gamer.Update(fakeNews{})
	require.EqualError(t, err, fake.Err("failed to react"))
}

func TestCasualGamer_Update(t *testing.T) {
	out := new(bytes.Buffer)
	gamer := NewCasualGamer(out, WithGamerLogger(zerolog.Nop()))

	for state := MinState; state <= MaxState; state++ {
		out.Reset()

		err := gamer.Update(fakeNews{state: state})
		require.NoError(t, err)

		if state < CasualThreshold {
			require.Equal(t, CasualReaction+"\n", out.String(), "state %d", state)
		} else {
			require.Empty(t, out.String(), "state %d", state)
		}
	}
}

func TestCasualGamer_UpdateFailure(t *testing.T) {
	gamer := NewCasualGamer(badWriter{}, WithGamerLogger(zerolog.Nop()))

	err := gamer.Update(fakeNews{state: 0})
	require.EqualError(t, err, fake.Err("failed to react"))

	// No reaction means nothing is written.
	err = gamer.Update(fakeNews{state: 9})
	require.NoError(t, err)
}

func TestGamer_Log(t *testing.T) {
	logger, check := fake.CheckLog("reacted")
	logger = logger.Level(zerolog.DebugLevel)

	gamer := NewProGamer(new(bytes.Buffer), WithGamerLogger(logger))

	err := gamer.Update(fakeNews{id: "abc", state: 4})
	require.NoError(t, err)

	check(t)
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeNews struct {
	id    string
	state int
}

func (n fakeNews) GetID() string {
	return n.id
}

func (n fakeNews) GetState() int {
	return n.state
}

type badWriter struct{}

func (badWriter) Write([]byte) (int, error) {
	return 0, fake.GetError()
}
