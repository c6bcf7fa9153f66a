/*
Package randx provides functions for generating cryptographically secure random identifiers.

It is primarily used to generate suggested display names for new participants and
standard UUID message identifiers.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// NicknamePrefix is the prefix used for suggested display names.
	NicknamePrefix = "anon_"

	// nicknameRandomLength is the number of random characters appended to the prefix.
	nicknameRandomLength = 6
)

// Nickname generates a random display-name suggestion with the "anon_" prefix
// and 6 random Base62 characters. It is offered as the default when the user
// is prompted for a name.
func Nickname() (string, error) {
	result := make([]byte, nicknameRandomLength)

	for i := 0; i < nicknameRandomLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for nickname: %v", err)
		}
		result[i] = Base62Chars[num.Int64()]
	}

	return NicknamePrefix + string(result), nil
}

// MessageID generates a standard UUID v4 string to serve as a unique identifier for a message.
func MessageID() string {
	return uuid.New().String()
}
