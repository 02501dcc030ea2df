// Package client implements the game side of the wire protocol for use by
// the interactive terminal client.
package client

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"wordled/internal/hint"
	"wordled/internal/model"
	"wordled/internal/protocol"
)

// StatsReport holds the statistics block returned by the server: four
// counters followed by the guess distribution, one slot per attempt count.
type StatsReport struct {
	GamesPlayed   int
	Wins          int
	CurrentStreak int
	MaxStreak     int
	Distribution  [model.MaxTries]int
}

// WinRate returns the percentage of games won, or 0 with no games played.
func (r StatsReport) WinRate() int {
	if r.GamesPlayed == 0 {
		return 0
	}
	return r.Wins * 100 / r.GamesPlayed
}

// GuessResult is the server's verdict on a single guess.
type GuessResult struct {
	// Accepted is false when the word is not in the word list; such a
	// guess consumes no attempt.
	Accepted bool
	// RoundChanged reports that the secret word rotated mid-game. The
	// round is abandoned without penalty.
	RoundChanged bool
	// Hint is the per-letter hint code, set only when Accepted.
	Hint string
}

// Won reports whether the hint marks every letter as exact.
func (g GuessResult) Won() bool {
	return g.Accepted && hint.Won(g.Hint)
}

// Client speaks the line protocol over a single connection. It is not safe
// for concurrent use; the protocol itself is strictly request-response.
type Client struct {
	conn net.Conn
	in   *bufio.Reader
}

// New wraps an established connection.
func New(conn net.Conn) *Client {
	return &Client{conn: conn, in: bufio.NewReader(conn)}
}

// Dial connects to the game server at addr ("host:port").
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	return New(conn), nil
}

// Close tears down the connection. The server treats this as an implicit
// logout for any bound user.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Register asks the server to create an account. It returns nil on
// success, model.ErrUserExists if the username is taken, and
// model.ErrEmptyPassword if the server refused the credentials.
func (c *Client) Register(username, password string) error {
	code, err := c.roundTrip(protocol.ReqRegister, username, password)
	if err != nil {
		return err
	}
	switch code {
	case protocol.RespOK:
		return nil
	case protocol.RespBusy:
		return model.ErrUserExists
	default:
		return model.ErrEmptyPassword
	}
}

// Login authenticates and claims the account's single session slot. It
// returns model.ErrAlreadyLoggedIn when another session holds the slot and
// model.ErrBadCredentials when the credentials are rejected.
func (c *Client) Login(username, password string) error {
	code, err := c.roundTrip(protocol.ReqLogin, username, password)
	if err != nil {
		return err
	}
	switch code {
	case protocol.RespOK:
		return nil
	case protocol.RespBusy:
		return model.ErrAlreadyLoggedIn
	default:
		return model.ErrBadCredentials
	}
}

// Logout releases the session. The server closes the connection after a
// successful logout.
func (c *Client) Logout(username string) error {
	code, err := c.roundTrip(protocol.ReqLogout, username, "")
	if err != nil {
		return err
	}
	if code != protocol.RespOK {
		return model.ErrNotLoggedIn
	}
	return nil
}

// StartPlay begins a game against the current round. It returns
// model.ErrAlreadyPlayed when the user has already played this round.
func (c *Client) StartPlay(username string) error {
	code, err := c.roundTrip(protocol.ReqStartPlay, username, "")
	if err != nil {
		return err
	}
	if code != protocol.RespOK {
		return model.ErrAlreadyPlayed
	}
	return nil
}

// BeginGuessing enters the guess phase after a successful StartPlay. Each
// subsequent Guess call sends one word.
func (c *Client) BeginGuessing() error {
	return c.send(protocol.ReqGuessLoop)
}

// Guess submits one word and reads the server's verdict.
func (c *Client) Guess(word string) (GuessResult, error) {
	if err := c.send(word); err != nil {
		return GuessResult{}, err
	}

	code, err := c.readLine()
	if err != nil {
		return GuessResult{}, err
	}

	switch code {
	case protocol.RespOK:
		hint, err := c.readLine()
		if err != nil {
			return GuessResult{}, err
		}
		return GuessResult{Accepted: true, Hint: hint}, nil
	case protocol.RespBusy:
		return GuessResult{RoundChanged: true}, nil
	default:
		return GuessResult{}, nil
	}
}

// Stats fetches the statistics block for the bound user. The server
// responds with zeroes when the session is not bound to username.
func (c *Client) Stats(username string) (StatsReport, error) {
	if err := c.send(protocol.ReqStats, username, ""); err != nil {
		return StatsReport{}, err
	}

	values := make([]int, 0, 4+model.MaxTries)
	for i := 0; i < 4+model.MaxTries; i++ {
		line, err := c.readLine()
		if err != nil {
			return StatsReport{}, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return StatsReport{}, fmt.Errorf("malformed statistics line %q: %w", line, err)
		}
		values = append(values, n)
	}

	report := StatsReport{
		GamesPlayed:   values[0],
		Wins:          values[1],
		CurrentStreak: values[2],
		MaxStreak:     values[3],
	}
	copy(report.Distribution[:], values[4:])
	return report, nil
}

// Share asks the server to broadcast the last finished game. The protocol
// defines no response; the server silently ignores a share with no
// completed game.
func (c *Client) Share() error {
	return c.send(protocol.ReqShare)
}

func (c *Client) roundTrip(lines ...string) (string, error) {
	if err := c.send(lines...); err != nil {
		return "", err
	}
	return c.readLine()
}

func (c *Client) send(lines ...string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(c.conn, b.String()); err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	return nil
}

func (c *Client) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
