package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogauth/internal/client/client"
	"github.com/dmitrijs2005/blogauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account.
// The new account is signed in on success.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.SignUp(ctx, name, email, password); err != nil {
		fmt.Fprintf(a.out, "Sign-up failed: %v\n", err)
		return err
	}

	a.profile = &client.Profile{Name: name, Email: email}
	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for email and password and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		return err
	}

	a.profile = p
	fmt.Fprintf(a.out, "Welcome, %s!\n", p.Name)
	return nil
}

// Forgot asks the server to e-mail a password-reset link.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	if err := a.client.ForgotPassword(ctx, email); err != nil {
		fmt.Fprintf(a.out, "Request failed: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Check your inbox for the reset link.")
	return nil
}

// Reset sets a new password using the id and token from a reset link.
func (a *App) Reset(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter user id (from the link)", a.out)
	if err != nil {
		return err
	}
	token, err := getSimpleText(a.reader, "Enter token (from the link)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.ResetPassword(ctx, id, token, password); err != nil {
		fmt.Fprintf(a.out, "Reset failed: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Password changed, please log in.")
	return nil
}

// Me prints the signed-in account.
func (a *App) Me(ctx context.Context) error {
	p, err := a.client.Me(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	a.profile = p
	fmt.Fprintf(a.out, "id: %s\nname: %s\nemail: %s\ncreated: %s\n", p.ID, p.Name, p.Email, p.CreatedAt)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.client.Refresh(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Tokens refreshed.")
	return nil
}

// Logout forgets the tokens held in memory.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.profile = nil
	return nil
}
