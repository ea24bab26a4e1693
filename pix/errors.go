package pix

import "errors"

var (
	// ErrInvalidAmount indica valor ausente, não numérico, zero ou negativo.
	ErrInvalidAmount = errors.New("valor inválido")

	// ErrFieldTooLong indica um campo TLV com mais de 99 bytes.
	ErrFieldTooLong = errors.New("campo excede 99 bytes")

	// ErrMalformedPayload é retornado por Decode quando o texto não segue o formato TLV.
	ErrMalformedPayload = errors.New("payload pix malformado")
)
