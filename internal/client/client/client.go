package client

import "context"

// Profile is the account data returned by SignIn and Me.
type Profile struct {
	ID        string
	Name      string
	Email     string
	CreatedAt string
}

type Client interface {
	Close() error
	SignUp(ctx context.Context, name, email string, password []byte) error
	SignIn(ctx context.Context, email string, password []byte) (*Profile, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, userID, token string, password []byte) error
	Refresh(ctx context.Context) error
	Me(ctx context.Context) (*Profile, error)
	Ping(ctx context.Context) error
	SignedIn() bool
	Logout()
}
