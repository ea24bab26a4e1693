package pix

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize converte o valor para ASCII imprimível (0x20–0x7E) e trunca em max bytes.
// Acentos são decompostos (NFD) e as marcas combinantes descartadas, então
// "João" vira "Joao". O corte acontece depois da normalização.
func Normalize(raw string, max int) string {
	if raw == "" || max <= 0 {
		return ""
	}

	// transform.Chain guarda estado, por isso é criado a cada chamada
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(t, raw)
	if err != nil {
		decomposed = raw
	}

	out := make([]byte, 0, min(len(decomposed), max))
	for i := 0; i < len(decomposed) && len(out) < max; i++ {
		c := decomposed[i]
		if c >= 0x20 && c <= 0x7E {
			out = append(out, c)
		}
	}
	return string(out)
}
