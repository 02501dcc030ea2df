package protocol

import "testing"

func TestShareMessage(t *testing.T) {
	tests := []struct {
		name     string
		username string
		roundID  int64
		tries    string
		expected string
	}{
		{"win", "alice", 3, "5", "alice: Game 3 5/12"},
		{"loss", "bob", 7, LossTries, "bob: Game 7 X/12"},
		{"multi digit round", "carol", 42, "12", "carol: Game 42 12/12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShareMessage(tt.username, tt.roundID, tt.tries)
			if result != tt.expected {
				t.Errorf("ShareMessage() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestStoredShareOmitsUsername(t *testing.T) {
	stored := StoredShare(3, "5")
	if stored != "Game 3 5/12" {
		t.Errorf("StoredShare() = %q, want %q", stored, "Game 3 5/12")
	}
}

func TestParseShareRound(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		expected int64
		ok       bool
	}{
		{"win message", "Game 9 3/12", 9, true},
		{"loss message", "Game 10 X/12", 10, true},
		{"large round", "Game 1234 1/12", 1234, true},
		{"missing round field", "Game", 0, false},
		{"non numeric round", "Game abc 1/12", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseShareRound(tt.stored)
			if id != tt.expected || ok != tt.ok {
				t.Errorf("ParseShareRound(%q) = (%d, %v), want (%d, %v)",
					tt.stored, id, ok, tt.expected, tt.ok)
			}
		})
	}
}

// Round 10 must order after round 9; text ordering would put "10" first.
func TestParseShareRoundOrdersNumerically(t *testing.T) {
	nine, _ := ParseShareRound(StoredShare(9, "3"))
	ten, _ := ParseShareRound(StoredShare(10, LossTries))
	if ten <= nine {
		t.Errorf("round 10 (%d) should order after round 9 (%d)", ten, nine)
	}
}
