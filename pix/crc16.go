package pix

import "fmt"

const crcPolynomial uint16 = 0x1021

// CRC16 calcula o CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF, sem XOR final)
// e devolve 4 dígitos hexadecimais maiúsculos.
func CRC16(data string) string {
	return fmt.Sprintf("%04X", checksum([]byte(data)))
}

func checksum(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Verify confere se o payload termina com o CRC correto.
func Verify(payload string) bool {
	if len(payload) < len(crcTag)+4 {
		return false
	}
	body, crc := payload[:len(payload)-4], payload[len(payload)-4:]
	if body[len(body)-len(crcTag):] != crcTag {
		return false
	}
	return CRC16(body) == crc
}
