package pix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		max  int
		want string
	}{
		{"vazio", "", 25, ""},
		{"acentos", "João", 25, "Joao"},
		{"cidade", "São Paulo", 15, "Sao Paulo"},
		{"cedilha e til", "Ação de Graças", 50, "Acao de Gracas"},
		{"controle removido", "linha\nnova\t", 25, "linhanova"},
		{"sem equivalente ascii", "Straße ♥", 25, "Strae "},
		{"trunca depois de normalizar", "ÁÉÍÓÚáéíóú", 5, "AEIOU"},
		{"max zero", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, tt.max))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, s := range []string{"RECEBEDOR PIX", "Panela de pressao", "PIX-ABC12345", "!~ 0123"} {
		once := Normalize(s, 50)
		assert.Equal(t, s, once)
		assert.Equal(t, once, Normalize(once, 50))
	}
}

func TestNormalize_OnlyPrintableASCII(t *testing.T) {
	raw := "Çãõ ñ ü — “aspas” 日本 \x00\x7f fim"
	out := Normalize(raw, 99)
	for i := 0; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i], byte(0x20))
		assert.LessOrEqual(t, out[i], byte(0x7E))
	}
	assert.True(t, strings.HasPrefix(out, "Cao n u"))
	assert.True(t, strings.HasSuffix(out, "fim"))
}
