package pix

import (
	"fmt"
	"strconv"
)

const maxFieldLength = 99

// Field é um campo TLV já decodificado.
type Field struct {
	ID    string
	Value string
}

// EncodeField monta id + tamanho com dois dígitos + valor.
func EncodeField(id, value string) (string, error) {
	if len(value) > maxFieldLength {
		return "", fmt.Errorf("%w: campo %s com %d bytes", ErrFieldTooLong, id, len(value))
	}
	return fmt.Sprintf("%s%02d%s", id, len(value), value), nil
}

// Decode separa o texto em campos TLV do mesmo nível.
// Grupos aninhados (26, 62) podem ser decodificados chamando Decode no Value.
func Decode(text string) ([]Field, error) {
	var fields []Field
	for pos := 0; pos < len(text); {
		if pos+4 > len(text) {
			return nil, fmt.Errorf("%w: cabeçalho incompleto na posição %d", ErrMalformedPayload, pos)
		}
		id := text[pos : pos+2]
		size, err := strconv.Atoi(text[pos+2 : pos+4])
		if err != nil {
			return nil, fmt.Errorf("%w: tamanho inválido no campo %s", ErrMalformedPayload, id)
		}
		start := pos + 4
		if start+size > len(text) {
			return nil, fmt.Errorf("%w: campo %s ultrapassa o fim do texto", ErrMalformedPayload, id)
		}
		fields = append(fields, Field{ID: id, Value: text[start : start+size]})
		pos = start + size
	}
	return fields, nil
}
