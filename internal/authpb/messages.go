package authpb

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// wireMessage is implemented by every AuthService message. On the wire a
// message is a google.protobuf.Struct keyed by the snake_case field names.
type wireMessage[T any] interface {
	*T
	fromStruct(s *structpb.Struct)
	toStruct() (*structpb.Struct, error)
}

func str(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

type Empty struct{}

func (m *Empty) fromStruct(*structpb.Struct) {}

func (m *Empty) toStruct() (*structpb.Struct, error) {
	return &structpb.Struct{}, nil
}

type SignUpRequest struct {
	Name     string
	Email    string
	Password string
}

func (m *SignUpRequest) fromStruct(s *structpb.Struct) {
	m.Name = str(s, "name")
	m.Email = str(s, "email")
	m.Password = str(s, "password")
}

func (m *SignUpRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"name":     m.Name,
		"email":    m.Email,
		"password": m.Password,
	})
}

type SignInRequest struct {
	Email    string
	Password string
}

func (m *SignInRequest) fromStruct(s *structpb.Struct) {
	m.Email = str(s, "email")
	m.Password = str(s, "password")
}

func (m *SignInRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"email":    m.Email,
		"password": m.Password,
	})
}

// TokenPair is returned by SignUp and Refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (m *TokenPair) fromStruct(s *structpb.Struct) {
	m.AccessToken = str(s, "access_token")
	m.RefreshToken = str(s, "refresh_token")
}

func (m *TokenPair) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"access_token":  m.AccessToken,
		"refresh_token": m.RefreshToken,
	})
}

type SignInResponse struct {
	AccessToken  string
	RefreshToken string
	ID           string
	Name         string
	Email        string
}

func (m *SignInResponse) fromStruct(s *structpb.Struct) {
	m.AccessToken = str(s, "access_token")
	m.RefreshToken = str(s, "refresh_token")
	m.ID = str(s, "id")
	m.Name = str(s, "name")
	m.Email = str(s, "email")
}

func (m *SignInResponse) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"access_token":  m.AccessToken,
		"refresh_token": m.RefreshToken,
		"id":            m.ID,
		"name":          m.Name,
		"email":         m.Email,
	})
}

type ForgotPasswordRequest struct {
	Email string
}

func (m *ForgotPasswordRequest) fromStruct(s *structpb.Struct) {
	m.Email = str(s, "email")
}

func (m *ForgotPasswordRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"email": m.Email})
}

type RefreshRequest struct {
	RefreshToken string
}

func (m *RefreshRequest) fromStruct(s *structpb.Struct) {
	m.RefreshToken = str(s, "refresh_token")
}

func (m *RefreshRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"refresh_token": m.RefreshToken})
}

type ResetPasswordRequest struct {
	ID       string
	Token    string
	Password string
}

func (m *ResetPasswordRequest) fromStruct(s *structpb.Struct) {
	m.ID = str(s, "id")
	m.Token = str(s, "token")
	m.Password = str(s, "password")
}

func (m *ResetPasswordRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":       m.ID,
		"token":    m.Token,
		"password": m.Password,
	})
}

// StatusResponse carries a bare outcome such as "OK" or "sent".
type StatusResponse struct {
	Status string
}

func (m *StatusResponse) fromStruct(s *structpb.Struct) {
	m.Status = str(s, "status")
}

func (m *StatusResponse) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"status": m.Status})
}

// Profile is the Me response. CreatedAt is RFC 3339 in UTC.
type Profile struct {
	ID        string
	Name      string
	Email     string
	CreatedAt string
}

func (m *Profile) fromStruct(s *structpb.Struct) {
	m.ID = str(s, "id")
	m.Name = str(s, "name")
	m.Email = str(s, "email")
	m.CreatedAt = str(s, "created_at")
}

func (m *Profile) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":         m.ID,
		"name":       m.Name,
		"email":      m.Email,
		"created_at": m.CreatedAt,
	})
}
