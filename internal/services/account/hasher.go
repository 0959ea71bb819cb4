package account

import "golang.org/x/crypto/bcrypt"

// Hasher abstracts how credentials are stored and checked. The store's
// contract is a verbatim plaintext comparison; Bcrypt is the opt-in
// production-oriented alternative.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(stored, candidate string) bool
}

// Plaintext stores and compares credentials verbatim (exact, case-sensitive)
type Plaintext struct{}

func (Plaintext) Hash(password string) (string, error) {
	return password, nil
}

func (Plaintext) Compare(stored, candidate string) bool {
	return stored == candidate
}

// Bcrypt stores a bcrypt hash of the credential
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (b Bcrypt) Compare(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
