package engine

import (
	"fmt"
	"strings"
)

// ParseKind parses user input to a quest Kind.
func ParseKind(input string) (Kind, error) {
	k := Kind(strings.TrimSpace(strings.ToLower(input)))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid quest kind: %q", input)
	}
	return k, nil
}

// ParseDifficulty parses user input to a dungeon rank.
func ParseDifficulty(input string) (Difficulty, error) {
	d := Difficulty(strings.TrimSpace(strings.ToUpper(input)))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid dungeon rank: %q (want E, D, C, B, A or S)", input)
	}
	return d, nil
}
