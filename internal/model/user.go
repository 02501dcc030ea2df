package model

import (
	"maps"
	"slices"
	"time"
)

// MaxTries is the number of guesses allowed per round.
const MaxTries = 12

// Stats holds a user's aggregate game statistics.
type Stats struct {
	GamesPlayed   int
	Wins          int
	CurrentStreak int
	MaxStreak     int
}

// User is the durable record for a registered account.
//
// Passwords are stored and compared as opaque strings; hardening the
// credential scheme is explicitly out of scope for this server.
type User struct {
	Username string
	Password string

	Stats Stats

	// GuessDistribution maps attempt count (1..MaxTries) to the number of
	// wins at that attempt. All keys are always present, default 0.
	GuessDistribution map[int]int

	// PlayedRounds lists the round IDs this user has already started, in
	// order. Used to prevent replaying the same round.
	PlayedRounds []int64

	// SharedResults lists this user's share messages in order, stored
	// without the username prefix ("Game {round} {tries}/12").
	SharedResults []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user record with zeroed statistics and a fully
// populated guess distribution.
func NewUser(username, password string, now time.Time) *User {
	dist := make(map[int]int, MaxTries)
	for i := 1; i <= MaxTries; i++ {
		dist[i] = 0
	}
	return &User{
		Username:          username,
		Password:          password,
		GuessDistribution: dist,
		PlayedRounds:      []int64{},
		SharedResults:     []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Clone returns a deep copy of the record. Storage backends hand out
// clones so no caller ever aliases the stored map or slice backing
// arrays; a record read by one goroutine must stay stable while another
// goroutine writes an update back.
func (u *User) Clone() *User {
	clone := *u
	clone.GuessDistribution = maps.Clone(u.GuessDistribution)
	clone.PlayedRounds = slices.Clone(u.PlayedRounds)
	clone.SharedResults = slices.Clone(u.SharedResults)
	return &clone
}

// HasPlayed reports whether the user has already started the given round.
func (u *User) HasPlayed(roundID int64) bool {
	for _, id := range u.PlayedRounds {
		if id == roundID {
			return true
		}
	}
	return false
}

// MarkPlayed records the round as started.
func (u *User) MarkPlayed(roundID int64) {
	u.PlayedRounds = append(u.PlayedRounds, roundID)
}

// UnmarkPlayed removes the played marker for the given round, so the user
// may start a fresh round after an abandoned one.
func (u *User) UnmarkPlayed(roundID int64) {
	for i := len(u.PlayedRounds) - 1; i >= 0; i-- {
		if u.PlayedRounds[i] == roundID {
			u.PlayedRounds = append(u.PlayedRounds[:i], u.PlayedRounds[i+1:]...)
			return
		}
	}
}

// RecordWin updates statistics for a round won in the given number of tries.
func (u *User) RecordWin(tries int) {
	u.Stats.GamesPlayed++
	u.Stats.Wins++
	u.Stats.CurrentStreak++
	if u.Stats.CurrentStreak > u.Stats.MaxStreak {
		u.Stats.MaxStreak = u.Stats.CurrentStreak
	}
	if u.GuessDistribution == nil {
		u.GuessDistribution = make(map[int]int, MaxTries)
	}
	u.GuessDistribution[tries]++
}

// RecordLoss updates statistics for a round lost after exhausting all tries.
func (u *User) RecordLoss() {
	u.Stats.GamesPlayed++
	u.Stats.CurrentStreak = 0
}
