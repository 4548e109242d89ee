package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics descompone (NFD), elimina marcas combinantes y recompone (NFC),
// de modo que "Vestuário" se pliega a "Vestuario" antes de derivar el slug.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make deriva un slug estable a partir de un nombre visible: pliega diacríticos,
// pasa a minúsculas, colapsa cada secuencia no alfanumérica en un solo guion y
// recorta guiones en los extremos. Es determinista e idempotente.
func Make(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}
	lower := strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(lower))
	prevHyphen := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
