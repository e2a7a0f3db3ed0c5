package core

import "golang.org/x/crypto/bcrypt"

// bcryptCost is fixed at 10 to stay compatible with hashes produced by the
// previous deployment. Raising it later is safe: the cost is embedded in
// each hash and VerifyPassword reads it from there.
const bcryptCost = 10

// HashPassword returns a salted bcrypt hash of plain. Two calls with the
// same input produce different hashes.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash. The algorithm variant
// ($2a/$2b) and cost are taken from the hash itself; mismatches and
// malformed hashes yield false, never a panic. The underlying comparison
// is constant-time.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
