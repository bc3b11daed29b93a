package store

// SetScryptCost lowers key-derivation cost so tests run quickly.
func SetScryptCost(s *EncryptedFileStore, n, r, p int) {
	s.n, s.r, s.p = n, r, p
}
