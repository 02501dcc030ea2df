// Package protocol defines the line-oriented wire protocol shared by the
// server and the client: one text token per line, requests identified by a
// numeric code line, responses beginning with a numeric code line.
package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Request codes sent by the client.
const (
	ReqRegister  = "1"
	ReqLogin     = "2"
	ReqLogout    = "3"
	ReqStartPlay = "4"
	ReqGuessLoop = "5"
	ReqStats     = "6"
	ReqShare     = "7"
)

// Response codes. Their meaning depends on the request: for a guess, Busy
// means the secret word rotated mid-round and Refused means the word is not
// in the word list.
const (
	RespOK      = "1"
	RespBusy    = "0"
	RespRefused = "-1"
)

// LossTries is the tries field of a share message for a lost round.
const LossTries = "X"

// ShareMessage composes the broadcast share message for a finished game.
// tries is the attempt count as a string, or LossTries for a loss.
func ShareMessage(username string, roundID int64, tries string) string {
	return fmt.Sprintf("%s: Game %d %s/12", username, roundID, tries)
}

// StoredShare is the persisted form of a share message: the portion after
// the username prefix.
func StoredShare(roundID int64, tries string) string {
	return fmt.Sprintf("Game %d %s/12", roundID, tries)
}

// ParseShareRound extracts the round number from a stored share message.
// Round numbers are compared numerically; multi-digit rounds must not be
// ordered as text.
func ParseShareRound(stored string) (int64, bool) {
	fields := strings.Fields(stored)
	if len(fields) < 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
