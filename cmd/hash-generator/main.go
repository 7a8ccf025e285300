// Command hash-generator prints bcrypt hashes for seeding accounts directly
// into the database. Passwords are read one per line from stdin, or taken
// from the arguments, and must satisfy the signup password policy.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/crowdchain/crowdchain-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if err := run(flag.Args(), *cost, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run hashes each password and writes one hash per line to out. Passwords
// that fail the policy are reported on errOut by position only; run returns
// an error if any failed.
func run(args []string, cost int, in io.Reader, out, errOut io.Writer) error {
	passwords := args
	if len(passwords) == 0 {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
				passwords = append(passwords, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read passwords: %w", err)
		}
	}

	hasher := auth.NewBcryptHasher(cost)
	failed := 0
	for i, password := range passwords {
		if err := domain.ValidatePassword(password); err != nil {
			fmt.Fprintf(errOut, "password %d: %v\n", i+1, err)
			failed++
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(errOut, "password %d: %v\n", i+1, err)
			failed++
			continue
		}
		fmt.Fprintln(out, hash)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d passwords could not be hashed", failed, len(passwords))
	}
	return nil
}
