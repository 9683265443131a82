package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/skip2/go-qrcode"
)

// Payload is what a staff badge encodes. The scanner posts the decrypted
// payload back to the claim endpoint.
type Payload struct {
	StaffID string `json:"staff_id"`
	ShiftID string `json:"shift_id"`
	EventID string `json:"event_id"`
}

// Generator encrypts staff payloads and renders them as QR PNGs.
type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

// EncodePNG returns a 256x256 PNG QR image carrying the encrypted payload.
func (g *Generator) EncodePNG(p Payload) ([]byte, error) {
	token, err := g.Encrypt(p)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(token, qrcode.Medium, 256)
}

// Encrypt serializes and AES-encrypts a payload into a URL-safe token.
func (g *Generator) Encrypt(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(g.secret)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Fails on tokens produced with another secret.
func (g *Generator) Decrypt(token string) (Payload, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Payload{}, fmt.Errorf("decode token: %w", err)
	}
	if len(ciphertext) < aes.BlockSize {
		return Payload{}, fmt.Errorf("token too short")
	}

	block, err := aes.NewCipher(g.secret)
	if err != nil {
		return Payload{}, err
	}

	iv := ciphertext[:aes.BlockSize]
	data := make([]byte, len(ciphertext)-aes.BlockSize)
	stream := cipher.NewCFBDecrypter(block, iv)
	stream.XORKeyStream(data, ciphertext[aes.BlockSize:])

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}
