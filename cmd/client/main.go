package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"wordled/internal/broadcast"
	"wordled/internal/client"
	"wordled/internal/hint"
	"wordled/internal/model"
)

const (
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("WORDLED")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "wordled",
		Short:        "Interactive Wordle client",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v.GetString("server"), v.GetString("multicast"))
		},
	}

	fs := cmd.Flags()
	fs.StringP("server", "s", "localhost:9999", "game server address (env: WORDLED_SERVER)")
	fs.String("multicast", "224.0.0.1:4446", "multicast group for share notifications, empty to disable (env: WORDLED_MULTICAST)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, fs.Lookup(f.Name))
		_ = v.BindEnv(f.Name)
	})

	return cmd
}

// ui is the interactive session state: one server connection, the bound
// username, and the share notification feed.
type ui struct {
	conn       *client.Client
	in         *bufio.Scanner
	username   string
	subscriber *broadcast.Subscriber
}

func run(serverAddr, multicastGroup string) error {
	conn, err := client.Dial(serverAddr)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	u := &ui{
		conn: conn,
		in:   bufio.NewScanner(os.Stdin),
	}

	if multicastGroup != "" {
		sub, err := broadcast.NewSubscriber(multicastGroup)
		if err != nil {
			fmt.Printf("Share notifications unavailable: %v\n", err)
		} else {
			u.subscriber = sub
			go sub.Run()
			defer func() { _ = sub.Close() }()
		}
	}

	fmt.Println("Welcome to Wordled!")
	return u.menuLoop()
}

func (u *ui) menuLoop() error {
	for {
		fmt.Println()
		fmt.Println("1) Register")
		fmt.Println("2) Login")
		fmt.Println("3) Logout")
		fmt.Println("4) Play")
		fmt.Println("5) Statistics")
		fmt.Println("6) Share last result")
		fmt.Println("7) Notifications")
		fmt.Println("0) Quit")

		choice, ok := u.prompt("> ")
		if !ok {
			return nil
		}

		var err error
		switch choice {
		case "1":
			err = u.register()
		case "2":
			err = u.login()
		case "3":
			done, lerr := u.logout()
			if done {
				return lerr
			}
			err = lerr
		case "4":
			err = u.play()
		case "5":
			err = u.stats()
		case "6":
			err = u.share()
		case "7":
			u.notifications()
		case "0", "":
			fmt.Println("Bye!")
			return nil
		default:
			fmt.Println("Unknown option")
		}

		if err != nil {
			return fmt.Errorf("connection lost: %w", err)
		}
	}
}

func (u *ui) register() error {
	username, password, ok := u.promptCredentials()
	if !ok {
		return nil
	}

	switch err := u.conn.Register(username, password); {
	case err == nil:
		fmt.Println("Registered. You can log in now.")
	case errors.Is(err, model.ErrUserExists):
		fmt.Println("That username is taken.")
	case errors.Is(err, model.ErrEmptyPassword):
		fmt.Println("Registration refused: password must not be empty.")
	default:
		return err
	}
	return nil
}

func (u *ui) login() error {
	if u.username != "" {
		fmt.Printf("Already logged in as %s.\n", u.username)
		return nil
	}

	username, password, ok := u.promptCredentials()
	if !ok {
		return nil
	}

	switch err := u.conn.Login(username, password); {
	case err == nil:
		u.username = username
		fmt.Printf("Logged in as %s.\n", username)
	case errors.Is(err, model.ErrAlreadyLoggedIn):
		fmt.Println("That account is already logged in elsewhere.")
	case errors.Is(err, model.ErrBadCredentials):
		fmt.Println("Wrong username or password.")
	default:
		return err
	}
	return nil
}

// logout returns done=true when the session ended: the server closes the
// connection after a successful logout.
func (u *ui) logout() (bool, error) {
	if u.username == "" {
		fmt.Println("Not logged in.")
		return false, nil
	}

	if err := u.conn.Logout(u.username); err != nil {
		if errors.Is(err, model.ErrNotLoggedIn) {
			fmt.Println("Logout refused.")
			return false, nil
		}
		return true, err
	}

	fmt.Printf("Goodbye, %s!\n", u.username)
	u.username = ""
	return true, nil
}

func (u *ui) play() error {
	if u.username == "" {
		fmt.Println("Log in first.")
		return nil
	}

	switch err := u.conn.StartPlay(u.username); {
	case err == nil:
	case errors.Is(err, model.ErrAlreadyPlayed):
		fmt.Println("You already played this word. Wait for the next one.")
		return nil
	default:
		return err
	}

	if err := u.conn.BeginGuessing(); err != nil {
		return err
	}

	tries := 0
	for tries < model.MaxTries {
		word, ok := u.prompt(fmt.Sprintf("Guess (%d left): ", model.MaxTries-tries))
		if !ok {
			return io.EOF
		}
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}

		result, err := u.conn.Guess(word)
		if err != nil {
			return err
		}

		if result.RoundChanged {
			fmt.Println("The secret word changed while you were playing. Round abandoned, no penalty.")
			return nil
		}
		if !result.Accepted {
			fmt.Println("Not in the word list, try again.")
			continue
		}

		tries++
		fmt.Println(colorize(word, result.Hint))

		if result.Won() {
			fmt.Printf("You won in %d/%d!\n", tries, model.MaxTries)
			return nil
		}
	}

	fmt.Println("Out of tries. Better luck next round!")
	return nil
}

func (u *ui) stats() error {
	if u.username == "" {
		fmt.Println("Log in first.")
		return nil
	}

	report, err := u.conn.Stats(u.username)
	if err != nil {
		return err
	}

	fmt.Printf("Games played:   %d\n", report.GamesPlayed)
	fmt.Printf("Wins:           %d (%d%%)\n", report.Wins, report.WinRate())
	fmt.Printf("Current streak: %d\n", report.CurrentStreak)
	fmt.Printf("Max streak:     %d\n", report.MaxStreak)
	fmt.Println("Guess distribution:")
	for i, count := range report.Distribution {
		fmt.Printf("  %2d: %s %d\n", i+1, strings.Repeat("#", count), count)
	}
	return nil
}

func (u *ui) share() error {
	if u.username == "" {
		fmt.Println("Log in first.")
		return nil
	}

	if err := u.conn.Share(); err != nil {
		return err
	}
	fmt.Println("Shared! (If you had no finished game, the server ignores this.)")
	return nil
}

func (u *ui) notifications() {
	if u.subscriber == nil {
		fmt.Println("Share notifications are disabled.")
		return
	}

	messages := u.subscriber.Messages()
	if len(messages) == 0 {
		fmt.Println("No notifications yet.")
		return
	}
	for _, m := range messages {
		fmt.Println(m)
	}
}

func (u *ui) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !u.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(u.in.Text()), true
}

func (u *ui) promptCredentials() (string, string, bool) {
	username, ok := u.prompt("Username: ")
	if !ok {
		return "", "", false
	}
	password, ok := u.prompt("Password: ")
	if !ok {
		return "", "", false
	}
	return username, password, true
}

// colorize renders a guess with its hint code: green for an exact match,
// yellow for present in another position, plain for absent.
func colorize(word, code string) string {
	if len(word) != len(code) {
		return word
	}

	var b strings.Builder
	for i := 0; i < len(word); i++ {
		switch code[i] {
		case hint.Exact:
			b.WriteString(colorGreen)
			b.WriteByte(word[i])
			b.WriteString(colorReset)
		case hint.Present:
			b.WriteString(colorYellow)
			b.WriteByte(word[i])
			b.WriteString(colorReset)
		default:
			b.WriteByte(word[i])
		}
	}
	return b.String()
}
