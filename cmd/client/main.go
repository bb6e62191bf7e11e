package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/medisphere/care-service/internal/client/api"
	"github.com/medisphere/care-service/internal/client/tokenstore"
	"github.com/medisphere/care-service/internal/config"
)

const usage = `usage: care-client <command> [flags]

commands:
  login    -email <email> -password <password>
  status
  profile
  logout
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("command required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := tokenstore.Open(cfg.Client.StatePath, cfg.Client.TokenTTL())
	if err != nil {
		return err
	}
	defer store.Close()

	client := api.New(cfg.Client.ServerURL, store)
	ctx := context.Background()

	switch args[0] {
	case "login":
		return runLogin(ctx, client, args[1:])
	case "status":
		return runStatus(client)
	case "profile":
		return runProfile(ctx, client)
	case "logout":
		return runLogout(ctx, client)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runLogin(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("email and password required")
	}

	result, err := client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in; token valid until %s\n", result.ExpiresAt.Local())
	return nil
}

func runStatus(client *api.Client) error {
	if client.HasSession() {
		fmt.Println("logged in")
	} else {
		fmt.Println("not logged in")
	}
	return nil
}

func runProfile(ctx context.Context, client *api.Client) error {
	profile, err := client.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrNotAuthenticated) {
			return errors.New("not logged in; run: care-client login")
		}
		return err
	}
	fmt.Printf("%s <%s> (%s)\n", profile.Name, profile.Email, profile.Status)
	return nil
}

func runLogout(ctx context.Context, client *api.Client) error {
	if err := client.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}
