// Package keymap maps characters between the QWERTY and ЙЦУКЕН layouts and
// classifies word scripts.
package keymap

// Direction selects which layout table a remap applies.
type Direction string

const (
	EnToRu Direction = "en_to_ru"
	RuToEn Direction = "ru_to_en"
)

// enToRu maps the character produced by a physical key under the US layout to
// the character the same key produces under the Russian layout. Shifted
// variants are separate entries.
var enToRu = map[rune]rune{
	'q': 'й', 'w': 'ц', 'e': 'у', 'r': 'к', 't': 'е', 'y': 'н', 'u': 'г',
	'i': 'ш', 'o': 'щ', 'p': 'з', '[': 'х', ']': 'ъ', 'a': 'ф', 's': 'ы',
	'd': 'в', 'f': 'а', 'g': 'п', 'h': 'р', 'j': 'о', 'k': 'л', 'l': 'д',
	';': 'ж', '\'': 'э', 'z': 'я', 'x': 'ч', 'c': 'с', 'v': 'м', 'b': 'и',
	'n': 'т', 'm': 'ь', ',': 'б', '.': 'ю', '/': '.',
	'`': 'ё',

	'Q': 'Й', 'W': 'Ц', 'E': 'У', 'R': 'К', 'T': 'Е', 'Y': 'Н', 'U': 'Г',
	'I': 'Ш', 'O': 'Щ', 'P': 'З', '{': 'Х', '}': 'Ъ', 'A': 'Ф', 'S': 'Ы',
	'D': 'В', 'F': 'А', 'G': 'П', 'H': 'Р', 'J': 'О', 'K': 'Л', 'L': 'Д',
	':': 'Ж', '"': 'Э', 'Z': 'Я', 'X': 'Ч', 'C': 'С', 'V': 'М', 'B': 'И',
	'N': 'Т', 'M': 'Ь', '<': 'Б', '>': 'Ю', '?': ',',
	'~': 'Ё',
}

// ruToEn is the inverse of enToRu, built at init so the two tables cannot
// drift apart.
var ruToEn = func() map[rune]rune {
	reverse := make(map[rune]rune, len(enToRu))
	for en, ru := range enToRu {
		reverse[ru] = en
	}
	return reverse
}()

// Forward returns the character a physical key produces under the Russian
// layout given the character it produces under the US layout. Unmapped
// characters are returned unchanged.
func Forward(ch rune) rune {
	if mapped, ok := enToRu[ch]; ok {
		return mapped
	}
	return ch
}

// Remap rewrites word character by character through the layout table for
// the given direction. Characters without a mapping pass through unchanged.
func Remap(word string, direction Direction) string {
	table := enToRu
	if direction == RuToEn {
		table = ruToEn
	}

	out := make([]rune, 0, len(word))
	for _, ch := range word {
		if mapped, ok := table[ch]; ok {
			out = append(out, mapped)
			continue
		}
		out = append(out, ch)
	}
	return string(out)
}
