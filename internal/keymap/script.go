package keymap

import "unicode"

// Script classifies the alphabet a word was typed in.
type Script string

const (
	ScriptLatin    Script = "latin"
	ScriptCyrillic Script = "cyrillic"
	ScriptMixed    Script = "mixed"
	ScriptOther    Script = "other"
)

// DetectScript reports the script of a word's alphabetic characters.
// Non-alphabetic characters are ignored; a word with no alphabetic
// characters at all (digits, punctuation, empty) is ScriptOther.
func DetectScript(word string) Script {
	var hasLatin, hasCyrillic bool
	for _, ch := range word {
		if !unicode.IsLetter(ch) {
			continue
		}
		if ch >= 0x0400 && ch <= 0x04FF {
			hasCyrillic = true
		} else {
			hasLatin = true
		}
	}

	switch {
	case hasLatin && hasCyrillic:
		return ScriptMixed
	case hasLatin:
		return ScriptLatin
	case hasCyrillic:
		return ScriptCyrillic
	default:
		return ScriptOther
	}
}
