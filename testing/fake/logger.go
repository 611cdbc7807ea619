package fake

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// CheckLog returns a logger and a check function. When called, the function
// will verify if the logger has seen the message printed.
func CheckLog(msg string) (zerolog.Logger, func(t *testing.T)) {
	buffer := new(bytes.Buffer)

	check := func(t *testing.T) {
		require.Contains(t, buffer.String(), fmt.Sprintf(`"%s"`, msg))
	}

	return zerolog.New(buffer), check
}

// CountLog returns a logger and a function that counts how many times the
// message has been printed.
func CountLog(msg string) (zerolog.Logger, func() int) {
	buffer := new(bytes.Buffer)

	count := func() int {
		return bytes.Count(buffer.Bytes(), []byte(fmt.Sprintf(`"message":"%s"`, msg)))
	}

	return zerolog.New(buffer), count
}
