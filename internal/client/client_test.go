package client

import (
	"bufio"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordled/internal/model"
)

// script runs a fake server on the other end of a pipe: it reads the
// expected request lines and writes back the canned response lines.
func script(t *testing.T, expect []string, respond []string) *Client {
	t.Helper()
	clientSide, serverSide := net.Pipe()
	t.Cleanup(func() {
		_ = clientSide.Close()
		_ = serverSide.Close()
	})

	go func() {
		in := bufio.NewReader(serverSide)
		for range expect {
			if _, err := in.ReadString('\n'); err != nil {
				return
			}
		}
		for _, line := range respond {
			if _, err := io.WriteString(serverSide, line+"\n"); err != nil {
				return
			}
		}
	}()

	return New(clientSide)
}

func TestRegisterSucceeds(t *testing.T) {
	c := script(t, []string{"1", "alice", "pw"}, []string{"1"})
	assert.NoError(t, c.Register("alice", "pw"))
}

func TestRegisterUsernameTaken(t *testing.T) {
	c := script(t, []string{"1", "alice", "pw"}, []string{"0"})
	assert.ErrorIs(t, c.Register("alice", "pw"), model.ErrUserExists)
}

func TestRegisterRefused(t *testing.T) {
	c := script(t, []string{"1", "alice", ""}, []string{"-1"})
	assert.ErrorIs(t, c.Register("alice", ""), model.ErrEmptyPassword)
}

func TestLoginSucceeds(t *testing.T) {
	c := script(t, []string{"2", "alice", "pw"}, []string{"1"})
	assert.NoError(t, c.Login("alice", "pw"))
}

func TestLoginSlotTaken(t *testing.T) {
	c := script(t, []string{"2", "alice", "pw"}, []string{"0"})
	assert.ErrorIs(t, c.Login("alice", "pw"), model.ErrAlreadyLoggedIn)
}

func TestLoginBadCredentials(t *testing.T) {
	c := script(t, []string{"2", "alice", "pw"}, []string{"-1"})
	assert.ErrorIs(t, c.Login("alice", "pw"), model.ErrBadCredentials)
}

func TestStartPlayAlreadyPlayed(t *testing.T) {
	c := script(t, []string{"4", "alice", ""}, []string{"-1"})
	assert.ErrorIs(t, c.StartPlay("alice"), model.ErrAlreadyPlayed)
}

func TestGuessAccepted(t *testing.T) {
	c := script(t, []string{"apple"}, []string{"1", "!!!!!"})

	result, err := c.Guess("apple")
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "!!!!!", result.Hint)
	assert.True(t, result.Won())
}

func TestGuessNotWon(t *testing.T) {
	c := script(t, []string{"beach"}, []string{"1", "-??--"})

	result, err := c.Guess("beach")
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.False(t, result.Won())
}

func TestGuessRejectedWord(t *testing.T) {
	c := script(t, []string{"zzzzz"}, []string{"-1"})

	result, err := c.Guess("zzzzz")
	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.False(t, result.Won())
}

func TestGuessRoundChanged(t *testing.T) {
	c := script(t, []string{"apple"}, []string{"0"})

	result, err := c.Guess("apple")
	require.NoError(t, err)
	assert.True(t, result.RoundChanged)
	assert.False(t, result.Accepted)
}

func TestStatsParsesAllLines(t *testing.T) {
	respond := []string{"5", "3", "2", "3"}
	dist := []string{"0", "1", "1", "0", "1", "0", "0", "0", "0", "0", "0", "0"}
	c := script(t, []string{"6", "alice", ""}, append(respond, dist...))

	report, err := c.Stats("alice")
	require.NoError(t, err)
	assert.Equal(t, 5, report.GamesPlayed)
	assert.Equal(t, 3, report.Wins)
	assert.Equal(t, 2, report.CurrentStreak)
	assert.Equal(t, 3, report.MaxStreak)
	assert.Equal(t, 1, report.Distribution[1])
	assert.Equal(t, 1, report.Distribution[4])
	assert.Equal(t, 60, report.WinRate())
}

func TestStatsMalformedLine(t *testing.T) {
	lines := make([]string, 4+model.MaxTries)
	for i := range lines {
		lines[i] = "0"
	}
	lines[2] = "not-a-number"
	c := script(t, []string{"6", "alice", ""}, lines)

	_, err := c.Stats("alice")
	assert.Error(t, err)
}

func TestWinRateWithNoGames(t *testing.T) {
	assert.Equal(t, 0, StatsReport{}.WinRate())
}
