package internal

import "math/rand/v2"

const (
	idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength  = 12
)

// GenerateID returns a random identifier of lowercase letters and digits. It is used for run IDs
// and names of in-memory databases, so collisions only need to be unlikely.
func GenerateID() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idCharset[rand.IntN(len(idCharset))]
	}
	return string(b)
}
