package app

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a one-way bcrypt hash of the password. The per-call
// random salt is embedded in the output.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash, using
// bcrypt's constant-time comparison with the embedded salt.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
