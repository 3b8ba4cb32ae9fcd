package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/otfkit/internal/auth"
	"github.com/julianstephens/otfkit/internal/cli"
	"github.com/julianstephens/otfkit/internal/keyring"
)

type AuthCmd struct {
	Set    AuthSetCmd    `cmd:"" help:"Store an API token in the OS keyring."`
	Login  AuthLoginCmd  `cmd:"" help:"Prompt for an API token and store it."`
	Status AuthStatusCmd `cmd:"" help:"Show which token is in use and when it expires." default:"1"`
	Delete AuthDeleteCmd `cmd:"" help:"Remove the stored API token."`
}

// validateToken rejects anything that is not an unexpired JWT.
func validateToken(token string) error {
	claims, err := auth.ParseClaims(strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if claims.Expired(timeNow()) {
		return auth.ErrTokenExpired
	}
	return nil
}

func storeToken(app *cli.Context, token string) error {
	if err := validateToken(token); err != nil {
		return err
	}
	if err := keyring.SetToken(token); err != nil {
		return err
	}
	app.Printf("✓ API token stored in OS keyring\n")
	if _, ok := os.LookupEnv(auth.TokenEnvVar); ok {
		app.Printf("⚠ %s is set and takes precedence over the keyring\n", auth.TokenEnvVar)
	}
	return nil
}

type AuthSetCmd struct {
	Token string `arg:"" help:"API id token (JWT)."`
}

func (cmd *AuthSetCmd) Run(app *cli.Context) error {
	return storeToken(app, cmd.Token)
}

type AuthLoginCmd struct {
	prompt func() (string, error)
}

func (cmd *AuthLoginCmd) Run(app *cli.Context) error {
	prompt := cmd.prompt
	if prompt == nil {
		prompt = promptToken
	}
	token, err := prompt()
	if errors.Is(err, huh.ErrUserAborted) {
		app.Printf("Login cancelled\n")
		return nil
	}
	if err != nil {
		return err
	}
	return storeToken(app, token)
}

func promptToken() (string, error) {
	var token string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API token").
				Description("Paste the id token from an authenticated OTF session.").
				EchoMode(huh.EchoModePassword).
				Value(&token).
				Validate(validateToken),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(token), nil
}

type AuthStatusCmd struct{}

func (cmd *AuthStatusCmd) Run(ctx context.Context, app *cli.Context) error {
	source := "OS keyring"
	if v, ok := os.LookupEnv(auth.TokenEnvVar); ok && strings.TrimSpace(v) != "" {
		source = auth.TokenEnvVar
	}

	token, err := app.Tokens.Token(ctx)
	if err != nil {
		return err
	}
	claims, err := auth.ParseClaims(token)
	if err != nil {
		return err
	}

	app.Printf("✓ Token found (%s)\n", source)
	if claims.MemberUUID != "" {
		app.Printf("  Member:  %s\n", claims.MemberUUID)
	}
	if claims.Email != "" {
		app.Printf("  Email:   %s\n", claims.Email)
	}
	if !claims.ExpiresAt.IsZero() {
		app.Printf("  Expires: %s\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04 MST"))
	}
	return nil
}

type AuthDeleteCmd struct{}

func (cmd *AuthDeleteCmd) Run(app *cli.Context) error {
	if err := keyring.DeleteToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API token stored in keyring")
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	app.Printf("✓ API token deleted from OS keyring\n")
	return nil
}
