// Command adminctl prepares admin credentials and tokens for operators.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, config.Load); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		} else {
			fmt.Fprintln(os.Stderr, "adminctl:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, loadConfig func() (*config.Config, error)) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "hash-password":
		// The password is read from stdin so it never shows up in shell history
		password, err := readLine(stdin)
		if err != nil {
			return err
		}
		if len(password) < 8 {
			return errors.New("password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		_, err = fmt.Fprintln(stdout, hash)
		return err

	case "issue-token":
		fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		username := fs.String("user", "", "Token subject (default: configured admin username)")
		roles := fs.String("roles", auth.RoleAdmin, "Comma separated roles")
		ttl := fs.Duration("ttl", 0, "Token lifetime (default: jwt.access_token_expiration)")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		jwtCfg := cfg.JWT
		if *ttl > 0 {
			jwtCfg.AccessTokenExpiration = *ttl
		}
		subject := *username
		if subject == "" {
			subject = cfg.Admin.Username
		}

		token, err := auth.NewJWTService(jwtCfg).GenerateAccessToken(subject, splitRoles(*roles))
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		_, err = fmt.Fprintf(stdout, "%s\n# expires %s\n", token.Token, token.ExpiresAt.Format(time.RFC3339))
		return err
	}
	return errUsage
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func splitRoles(s string) []string {
	var roles []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Storefront admin tool

Usage:
  adminctl <command> [flags]

Commands:
  hash-password                    Read a password from stdin and print its bcrypt hash
                                   for STORE_ADMIN_PASSWORD_HASH
  issue-token [-user u] [-roles r] [-ttl d]
                                   Sign an access token with STORE_JWT_SECRET`)
}
