package xtouch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripNameLength is the width of one scribble strip column.
const StripNameLength = 7

var transliterations = map[rune]string{
	'ã': "a", 'Ã': "A", 'à': "a", 'À': "A", 'á': "a", 'Á': "A",
	'€': "EUR", 'Ž': "Z", 'ž': "z", 'œ': "oe",
	'é': "e", 'É': "E", 'è': "e", 'È': "E", 'ê': "e", 'Ê': "E", 'ë': "e", 'Ë': "E",
	'ì': "i", 'Ì': "I", 'í': "i", 'Í': "I", 'î': "i", 'Î': "I", 'ï': "i", 'Ï': "I",
	'ù': "u", 'Ù': "U", 'ú': "u", 'Ú': "U", 'û': "u", 'Û': "U", 'ü': "ue", 'Ü': "Ue",
	'ý': "y", 'Ý': "Y",

	'å': "aa", 'Å': "Aa", 'ä': "ae", 'Ä': "Ae", 'æ': "ae", 'Æ': "Ae",
	'Ç': "Ts", 'ç': "ts", 'ñ': "n", 'Ñ': "N", 'ð': "dh",
	'ö': "oe", 'Ö': "Oe", 'ø': "oe", 'Ø': "Oe", 'õ': "o", 'Õ': "O",
	'þ': "th", 'Þ': "Th", 'ß': "ss",

	'А': "A", 'а': "a", 'Б': "B", 'б': "b", 'В': "V", 'в': "v", 'Г': "G", 'г': "g",
	'Д': "D", 'д': "d", 'Е': "E", 'е': "e", 'Ж': "Zh", 'ж': "zh", 'З': "Z", 'з': "z",
	'И': "I", 'и': "i", 'Й': "I", 'й': "i", 'К': "K", 'к': "k", 'Л': "L", 'л': "l",
	'М': "M", 'м': "m", 'Н': "N", 'н': "n", 'О': "O", 'о': "o", 'П': "P", 'п': "p",
	'Р': "R", 'р': "r", 'С': "S", 'с': "s", 'Т': "T", 'т': "t", 'У': "U", 'у': "u",
	'Ф': "F", 'ф': "f", 'Х': "Kh", 'х': "kh", 'Ц': "Ts", 'ц': "ts", 'Ч': "Ch", 'ч': "ch",
	'Ш': "Sh", 'ш': "sh", 'Щ': "Shch", 'щ': "shch", 'Ъ': "'", 'ъ': "'", 'Ы': "Y", 'ы': "y",
	'Ь': "'", 'ь': "'", 'Э': "E", 'э': "e", 'Ю': "Ju", 'ю': "ju", 'Я': "Ja", 'я': "ja",

	'Є': "Ye", 'є': "ye", 'Ї': "Yi", 'ї': "yi",

	'Љ': "Lj", 'љ': "lj", 'Њ': "Nj", 'њ': "nj", 'Џ': "Dz", 'џ': "dz",
}

// stripMarks removes combining marks so that letters missing from the table still keep
// their base letter.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func printable(r rune) bool {
	return r >= 32 && r < 127
}

// ASCII returns s with every character the LCD cannot show transliterated or dropped.
func ASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if t, ok := transliterations[r]; ok {
			b.WriteString(t)
			continue
		}
		if printable(r) {
			b.WriteRune(r)
			continue
		}
		folded, _, err := transform.String(stripMarks, string(r))
		if err != nil {
			continue
		}
		for _, f := range folded {
			if printable(f) {
				b.WriteRune(f)
			}
		}
	}
	return b.String()
}

// StripName fits name into one scribble strip column.
func StripName(name string) string {
	name = ASCII(name)
	if len(name) > StripNameLength {
		name = name[:StripNameLength]
	}
	return name + strings.Repeat(" ", StripNameLength-len(name))
}
