package grpc

import (
	"net/mail"
	"unicode/utf8"

	"github.com/dmitrijs2005/blogauth/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MinPasswordLength is the shortest password accepted on sign-up and reset.
const MinPasswordLength = 8

func invalid(msg string) error {
	return status.Error(codes.InvalidArgument, msg)
}

func validateEmail(email string) error {
	if email == "" {
		return invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email must be a valid email")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return invalid("password must be at least 8 characters long")
	}
	return nil
}

func validateSignUp(in services.SignUpInput) error {
	if in.Name == "" {
		return invalid("name is required")
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	return validatePassword(in.Password)
}

func validateSignIn(in services.SignInInput) error {
	if in.Email == "" {
		return invalid("email is required")
	}
	if in.Password == "" {
		return invalid("password is required")
	}
	return nil
}

func validateResetPassword(in services.ResetPasswordInput) error {
	if in.UserID == "" {
		return invalid("id is required")
	}
	if in.Token == "" {
		return invalid("token is required")
	}
	return validatePassword(in.Password)
}
