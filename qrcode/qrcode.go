package qrcode

import (
	"encoding/base64"
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// Renderer gera a imagem PNG do QR code a partir do texto do payload.
type Renderer struct {
	size  int
	level qr.RecoveryLevel
}

func NewRenderer(size int) *Renderer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Renderer{size: size, level: qr.Medium}
}

func (r *Renderer) PNG(content string) ([]byte, error) {
	png, err := qr.Encode(content, r.level, r.size)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar qrcode: %w", err)
	}
	return png, nil
}

// DataURI devolve o PNG como "data:image/png;base64,...", pronto para um <img>.
func (r *Renderer) DataURI(content string) (string, error) {
	png, err := r.PNG(content)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
