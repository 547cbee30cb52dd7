package user

// PasswordHasher hashes and verifies login passwords.
type PasswordHasher interface {
	Hash(plainPassword string) (string, error)
	Verify(hashedPassword, plainPassword string) error
}
