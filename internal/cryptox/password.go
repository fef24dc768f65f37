// Package cryptox hashes and verifies passwords with argon2id.
//
// A salt is stored as a self-describing string that carries both the random
// salt bytes and the cost parameters used to derive the hash, e.g.
//
//	argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHRzYWx0c2FsdA
//
// so that a hash can always be recomputed from (password, salt) alone even
// after the default cost is raised.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltPrefix = "argon2id"
	saltLen    = 16
	keyLen     = 32
)

// ErrMalformedSalt is returned when a stored salt cannot be parsed.
var ErrMalformedSalt = errors.New("malformed salt")

// HashParams are the argon2id cost parameters.
type HashParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultParams follows the RFC 9106 second recommended option.
var DefaultParams = HashParams{Time: 3, MemoryKiB: 64 * 1024, Threads: 2}

var randReader io.Reader = rand.Reader

// GenerateSalt returns a fresh random salt string encoding p.
func GenerateSalt(p HashParams) (string, error) {
	if p.Time == 0 || p.MemoryKiB == 0 || p.Threads == 0 {
		return "", fmt.Errorf("invalid hash params %+v", p)
	}

	b := make([]byte, saltLen)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return "", fmt.Errorf("read random salt: %w", err)
	}

	return fmt.Sprintf("%s$v=%d$m=%d,t=%d,p=%d$%s",
		saltPrefix, argon2.Version, p.MemoryKiB, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(b)), nil
}

// HashPassword derives the hash of password under salt. The result is
// deterministic for the same inputs.
func HashPassword(password, salt string) (string, error) {
	p, raw, err := parseSalt(salt)
	if err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), raw, p.Time, p.MemoryKiB, p.Threads, keyLen)
	return base64.RawStdEncoding.EncodeToString(key), nil
}

// VerifyPassword reports whether password hashes to stored under salt.
// The comparison runs in constant time.
func VerifyPassword(password, salt, stored string) (bool, error) {
	computed, err := HashPassword(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1, nil
}

func parseSalt(salt string) (HashParams, []byte, error) {
	var p HashParams

	parts := strings.Split(salt, "$")
	if len(parts) != 4 || parts[0] != saltPrefix {
		return p, nil, ErrMalformedSalt
	}

	var version int
	if _, err := fmt.Sscanf(parts[1], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, ErrMalformedSalt
	}
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Time, &p.Threads); err != nil {
		return p, nil, ErrMalformedSalt
	}
	if p.Time == 0 || p.MemoryKiB == 0 || p.Threads == 0 {
		return p, nil, ErrMalformedSalt
	}

	raw, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(raw) == 0 {
		return p, nil, ErrMalformedSalt
	}

	return p, raw, nil
}
