package randx

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNickname(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		name, err := Nickname()
		if err != nil {
			t.Fatalf("Nickname() returned error: %v", err)
		}

		if !strings.HasPrefix(name, NicknamePrefix) {
			t.Errorf("Expected prefix %q, got %q", NicknamePrefix, name)
		}

		if len(name) != len(NicknamePrefix)+6 {
			t.Errorf("Expected length %d, got %d (%q)", len(NicknamePrefix)+6, len(name), name)
		}

		for _, char := range name[len(NicknamePrefix):] {
			if !strings.ContainsRune(Base62Chars, char) {
				t.Errorf("Nickname %q contains non-Base62 character %q", name, char)
			}
		}

		seen[name] = true
	}

	// 50 draws from a 62^6 space colliding down to a handful would mean a broken generator.
	if len(seen) < 45 {
		t.Errorf("Expected near-unique nicknames, got %d distinct out of 50", len(seen))
	}
}

func TestMessageID(t *testing.T) {
	id := MessageID()

	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("MessageID() = %q, not a valid UUID: %v", id, err)
	}

	if id == MessageID() {
		t.Error("Expected distinct message IDs on consecutive calls")
	}
}
