// Package commands implements the controle-cafe subcommands
package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/klabast/wb-services/controle-cafe/internal/app"
	"github.com/klabast/wb-services/controle-cafe/internal/config"
)

// HashPassword handles the hash-password subcommand.
// The auth file path comes from server.auth_file (CAFE_SERVER_AUTH_FILE).
func HashPassword(args []string) {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (default: ./config.yaml if present)")
	overwrite := fs.Bool("overwrite", false, "Overwrite existing auth file without asking")
	insecureUnmask := fs.Bool("insecure-unmask-password", false, "Show password as plain text (INSECURE!)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: controle-cafe hash-password [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates the edit-mode auth file with a hashed password (Argon2id).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  CAFE_SERVER_AUTH_FILE    Path to auth file (default: ./auth.secret)\n")
	}
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	in := bufio.NewReader(os.Stdin)
	username, password, err := promptCredentials(in, os.Stdout, *insecureUnmask)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := app.CreateAuthFile(cfg.Server.AuthFile, username, password, *overwrite, in, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// promptCredentials asks for a username and a confirmed password
func promptCredentials(in *bufio.Reader, out io.Writer, unmask bool) (string, string, error) {
	fmt.Fprint(out, "Enter username: ")
	username, err := readLine(in)
	if err != nil {
		return "", "", fmt.Errorf("failed to read username: %w", err)
	}
	if username == "" {
		return "", "", errors.New("username cannot be empty")
	}

	read := func(prompt string) (string, error) {
		if unmask {
			fmt.Fprint(out, prompt)
			return readLine(in)
		}
		return readPasswordWithMask(out, prompt)
	}

	if unmask {
		fmt.Fprintf(os.Stderr, "⚠️  WARNING: Password will be visible on screen!\n")
	}
	password, err := read("Enter password:   ")
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := read("Confirm password: ")
	if err != nil {
		return "", "", fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if password == "" {
		return "", "", errors.New("password cannot be empty")
	}
	if password != confirm {
		return "", "", errors.New("passwords do not match")
	}
	return username, password, nil
}

// readLine reads one line without the trailing newline
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPasswordWithMask reads a password from the terminal echoing asterisks.
// Without a terminal it falls back to hidden input.
func readPasswordWithMask(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(password), err
	}
	defer term.Restore(fd, oldState)

	var password []rune
	reader := bufio.NewReader(os.Stdin)
	for {
		char, _, err := reader.ReadRune()
		if err != nil {
			fmt.Fprint(out, "\r\n")
			return string(password), nil
		}

		switch char {
		case '\n', '\r':
			fmt.Fprint(out, "\r\n")
			return string(password), nil
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Fprint(out, "\b \b")
			}
		case 3: // Ctrl+C
			term.Restore(fd, oldState)
			fmt.Fprint(out, "\r\n")
			os.Exit(1)
		default:
			if char >= 32 && char != 127 {
				password = append(password, char)
				fmt.Fprint(out, "*")
			}
		}
	}
}
