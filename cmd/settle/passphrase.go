package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/cobby8/allowance-manager-web/internal/auth"
	"github.com/cobby8/allowance-manager-web/internal/mask"
)

// passphraseEnv names the variable that supplies the passphrase without a prompt.
const passphraseEnv = "SETTLE_PASSPHRASE"

// readPassphrase returns SETTLE_PASSPHRASE, or the first line of stdin.
func readPassphrase(e env) (string, error) {
	if p := e.getenv(passphraseEnv); p != "" {
		return p, nil
	}
	line, err := bufio.NewReader(e.stdin).ReadString('\n')
	if line = strings.TrimRight(line, "\r\n"); line != "" {
		return line, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading passphrase from stdin: %w", err)
	}
	return "", errors.New("empty passphrase on stdin")
}

// runHashPassphrase prints the bcrypt hash to put in security.passphrase_hash.
func runHashPassphrase(args []string, e env) error {
	fs := newFlagSet("hash-passphrase", e)
	if err := fs.Parse(args); err != nil {
		return err
	}

	passphrase, err := readPassphrase(e)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassphrase(passphrase)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, hash)
	return err
}

// runUnseal opens values sealed into the archive. Values come from the
// arguments, or one per line on stdin.
func runUnseal(args []string, e env) error {
	fs := newFlagSet("unseal", e)
	if err := fs.Parse(args); err != nil {
		return err
	}

	passphrase := e.getenv(passphraseEnv)
	if passphrase == "" {
		return fmt.Errorf("%s must be set to unseal values", passphraseEnv)
	}
	sealer, err := mask.NewSealer(passphrase, 0)
	if err != nil {
		return err
	}

	values := fs.Args()
	if len(values) == 0 {
		scanner := bufio.NewScanner(e.stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if v := strings.TrimSpace(scanner.Text()); v != "" {
				values = append(values, v)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading sealed values: %w", err)
		}
	}

	for _, v := range values {
		plain, err := sealer.Open(v)
		if err != nil {
			return fmt.Errorf("unsealing value: %w", err)
		}
		if _, err := fmt.Fprintln(e.stdout, plain); err != nil {
			return err
		}
	}
	return nil
}
