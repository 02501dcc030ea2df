package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"wordled/internal/hint"
	"wordled/internal/model"
	"wordled/internal/protocol"
)

// finishedGame is the most recent completed result, kept until a new game
// starts so the user can share it.
type finishedGame struct {
	roundID int64
	tries   string // attempt count, or protocol.LossTries
}

// session is the per-connection protocol state machine. It owns no durable
// state: every user mutation goes through the account service, and the
// secret word is re-read from the round service on every guess.
type session struct {
	conn   net.Conn
	in     *bufio.Reader
	deps   Deps
	logger *slog.Logger

	// username is set after a successful login and cleared on logout.
	username string

	// playRound is the round ID captured when a play started; a guess is
	// valid only while it equals the current round ID.
	playRound int64
	playing   bool

	pending *finishedGame
}

func newSession(conn net.Conn, deps Deps, logger *slog.Logger) *session {
	return &session{
		conn: conn,
		in:   bufio.NewReader(conn),
		deps: deps,
		logger: logger.With(
			slog.String("session_id", uuid.NewString()),
			slog.String("remote_addr", conn.RemoteAddr().String()),
		),
	}
}

// serve processes requests in arrival order until the client disconnects
// or logs out. A dropped connection triggers an implicit logout so the
// registry never leaks a permanently occupied slot.
func (s *session) serve(ctx context.Context) {
	defer func() {
		_ = s.conn.Close()
		s.releaseLogin()
	}()

	s.logger.Info("session opened")

	for {
		code, err := s.readLine()
		if err != nil {
			s.logDisconnect(err)
			return
		}

		var herr error
		closing := false

		switch code {
		case protocol.ReqRegister:
			herr = s.handleRegister(ctx)
		case protocol.ReqLogin:
			herr = s.handleLogin(ctx)
		case protocol.ReqLogout:
			closing, herr = s.handleLogout(ctx)
		case protocol.ReqStartPlay:
			herr = s.handleStartPlay(ctx)
		case protocol.ReqGuessLoop:
			herr = s.handleGuessLoop(ctx)
		case protocol.ReqStats:
			herr = s.handleStats(ctx)
		case protocol.ReqShare:
			herr = s.handleShare(ctx)
		default:
			s.logger.Warn("unknown request code", slog.String("code", code))
		}

		if herr != nil {
			s.logDisconnect(herr)
			return
		}
		if closing {
			s.logger.Info("session closed by logout")
			return
		}
	}
}

// handleRegister creates an account. Registration never implies login.
func (s *session) handleRegister(ctx context.Context) error {
	username, password, err := s.readCredentials()
	if err != nil {
		return err
	}

	switch err := s.deps.Accounts.TryRegister(ctx, username, password); {
	case err == nil:
		return s.writeLine(protocol.RespOK)
	case errors.Is(err, model.ErrUserExists):
		return s.writeLine(protocol.RespBusy)
	case errors.Is(err, model.ErrEmptyPassword):
		return s.writeLine(protocol.RespRefused)
	default:
		s.logger.Error("register failed", slog.String("error", err.Error()))
		return s.writeLine(protocol.RespRefused)
	}
}

// handleLogin authenticates and claims the account's registry slot,
// binding the username to this connection.
func (s *session) handleLogin(ctx context.Context) error {
	username, password, err := s.readCredentials()
	if err != nil {
		return err
	}

	if s.username != "" {
		return s.writeLine(protocol.RespBusy)
	}

	if _, err := s.deps.Accounts.Authenticate(ctx, username, password); err != nil {
		if !errors.Is(err, model.ErrBadCredentials) {
			s.logger.Error("authenticate failed", slog.String("error", err.Error()))
		}
		return s.writeLine(protocol.RespRefused)
	}

	if err := s.deps.Registry.Login(username); err != nil {
		return s.writeLine(protocol.RespBusy)
	}

	s.username = username
	s.logger.Info("session bound", slog.String("username", username))
	return s.writeLine(protocol.RespOK)
}

// handleLogout releases the registry slot and closes the connection.
func (s *session) handleLogout(ctx context.Context) (bool, error) {
	username, _, err := s.readCredentials()
	if err != nil {
		return false, err
	}

	if s.username == "" || s.username != username {
		return false, s.writeLine(protocol.RespRefused)
	}

	if err := s.deps.Registry.Logout(s.username); err != nil {
		return false, s.writeLine(protocol.RespRefused)
	}

	s.username = ""
	return true, s.writeLine(protocol.RespOK)
}

// handleStartPlay records the current round as played for the user and
// captures the round ID the upcoming guesses are valid against.
func (s *session) handleStartPlay(ctx context.Context) error {
	username, _, err := s.readCredentials()
	if err != nil {
		return err
	}

	if s.username == "" || s.username != username {
		return s.writeLine(protocol.RespRefused)
	}

	_, roundID := s.deps.Round.Current()

	alreadyPlayed := false
	merr := s.deps.Accounts.Mutate(ctx, username, func(u *model.User) {
		if u.HasPlayed(roundID) {
			alreadyPlayed = true
			return
		}
		u.MarkPlayed(roundID)
	})
	if merr != nil {
		s.logger.Error("start play failed", slog.String("error", merr.Error()))
		return s.writeLine(protocol.RespRefused)
	}
	if alreadyPlayed {
		return s.writeLine(protocol.RespRefused)
	}

	s.playing = true
	s.playRound = roundID
	s.pending = nil

	s.logger.Info("play started", slog.Int64("round", roundID))
	return s.writeLine(protocol.RespOK)
}

// handleGuessLoop runs one game: up to MaxTries guesses against the round
// captured at StartPlay. The round ID is re-checked after reading each
// guess; a rotation mid-game abandons the round without penalty and
// removes the played marker so the user may start the new round.
func (s *session) handleGuessLoop(ctx context.Context) error {
	if !s.playing || s.username == "" {
		s.logger.Warn("guess loop requested with no play in progress")
		return nil
	}

	tries := 0
	for tries < model.MaxTries {
		guess, err := s.readLine()
		if err != nil {
			return err
		}

		secret, current := s.deps.Round.Current()
		if current != s.playRound {
			return s.abortChangedRound(ctx)
		}

		if !s.deps.Dictionary.IsValidWord(guess) {
			if err := s.writeLine(protocol.RespRefused); err != nil {
				return err
			}
			continue
		}

		tries++
		code := hint.Compute(secret, guess)
		if err := s.writeLine(protocol.RespOK, code); err != nil {
			return err
		}

		if hint.Won(code) {
			return s.finishGame(ctx, tries, true)
		}
	}

	return s.finishGame(ctx, tries, false)
}

// abortChangedRound handles the rotation race: the in-progress round is
// abandoned, the played marker removed, and no loss is counted.
func (s *session) abortChangedRound(ctx context.Context) error {
	staleRound := s.playRound
	s.playing = false

	if err := s.deps.Accounts.Mutate(ctx, s.username, func(u *model.User) {
		u.UnmarkPlayed(staleRound)
	}); err != nil {
		s.logger.Error("failed to clear played marker", slog.String("error", err.Error()))
	}

	s.logger.Info("round abandoned, secret word rotated", slog.Int64("round", staleRound))
	return s.writeLine(protocol.RespBusy)
}

// finishGame applies the win/loss statistics update as a single
// read-modify-write cycle and records the result for sharing.
func (s *session) finishGame(ctx context.Context, tries int, won bool) error {
	s.playing = false

	if err := s.deps.Accounts.Mutate(ctx, s.username, func(u *model.User) {
		if won {
			u.RecordWin(tries)
		} else {
			u.RecordLoss()
		}
	}); err != nil {
		s.logger.Error("failed to update statistics", slog.String("error", err.Error()))
		return nil
	}

	triesField := protocol.LossTries
	if won {
		triesField = strconv.Itoa(tries)
	}
	s.pending = &finishedGame{roundID: s.playRound, tries: triesField}

	s.logger.Info("game finished",
		slog.Int64("round", s.playRound),
		slog.Bool("won", won),
		slog.Int("tries", tries))
	return nil
}

// handleStats sends games, wins, streaks, and the 12-slot guess
// distribution. The response is always exactly 16 lines to keep the wire
// in sync; an unbound or unknown user reads as all zeroes.
func (s *session) handleStats(ctx context.Context) error {
	username, _, err := s.readCredentials()
	if err != nil {
		return err
	}

	var user *model.User
	if s.username != "" && s.username == username {
		user, err = s.deps.Accounts.Get(ctx, username)
		if err != nil {
			s.logger.Error("stats lookup failed", slog.String("error", err.Error()))
			user = nil
		}
	}

	lines := make([]string, 0, 4+model.MaxTries)
	if user == nil {
		for i := 0; i < 4+model.MaxTries; i++ {
			lines = append(lines, "0")
		}
	} else {
		lines = append(lines,
			strconv.Itoa(user.Stats.GamesPlayed),
			strconv.Itoa(user.Stats.Wins),
			strconv.Itoa(user.Stats.CurrentStreak),
			strconv.Itoa(user.Stats.MaxStreak),
		)
		for i := 1; i <= model.MaxTries; i++ {
			lines = append(lines, strconv.Itoa(user.GuessDistribution[i]))
		}
	}

	return s.writeLine(lines...)
}

// handleShare publishes the pending result to all subscribers and appends
// it to the user's share history. Fire and forget: the protocol defines no
// response, and a share with no completed game is ignored.
func (s *session) handleShare(ctx context.Context) error {
	if s.username == "" || s.pending == nil {
		s.logger.Warn("share ignored, no completed game pending")
		return nil
	}

	message := protocol.ShareMessage(s.username, s.pending.roundID, s.pending.tries)
	stored := protocol.StoredShare(s.pending.roundID, s.pending.tries)

	if err := s.deps.Accounts.Mutate(ctx, s.username, func(u *model.User) {
		u.SharedResults = append(u.SharedResults, stored)
	}); err != nil {
		s.logger.Error("failed to persist share", slog.String("error", err.Error()))
		return nil
	}

	s.deps.Publisher.Publish(message)
	return nil
}

// releaseLogin performs the implicit logout when a session ends with a
// user still bound.
func (s *session) releaseLogin() {
	if s.username == "" {
		return
	}
	if err := s.deps.Registry.Logout(s.username); err == nil {
		s.logger.Info("implicit logout", slog.String("username", s.username))
	}
	s.username = ""
}

func (s *session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *session) readCredentials() (string, string, error) {
	username, err := s.readLine()
	if err != nil {
		return "", "", err
	}
	password, err := s.readLine()
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

func (s *session) writeLine(lines ...string) error {
	for _, line := range lines {
		if _, err := io.WriteString(s.conn, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) logDisconnect(err error) {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		s.logger.Info("client disconnected")
		return
	}
	s.logger.Info("session ended", slog.String("error", err.Error()))
}
