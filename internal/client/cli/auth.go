package cli

import (
	"context"
	"fmt"
)

// Login stores the device token minted by the server operator. Sync stays
// idle until a token is present.
func (a *App) Login(ctx context.Context) error {
	token, err := GetSecret("Enter device token", a.out)
	if err != nil {
		return err
	}
	if len(token) == 0 {
		return fmt.Errorf("token must not be empty")
	}

	if err := a.meta.Set(ctx, tokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	if err := a.api.Health(ctx); err != nil {
		fmt.Fprintln(a.out, "Token stored; server currently unreachable.")
		return nil
	}
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.meta.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
