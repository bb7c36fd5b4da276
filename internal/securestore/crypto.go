package securestore

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"

	"nutridiary/internal/common"
)

// encryptJSON serializes v to JSON and encrypts it with AES-GCM. The key
// must be 16, 24, or 32 bytes; a fresh random 12-byte nonce is generated for
// every call and returned alongside the ciphertext.
func encryptJSON(v any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(aesgcm.NonceSize())
	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)

	return ciphertext, nonce, nil
}

// decryptJSON reverses encryptJSON, unmarshalling the plaintext into v.
// The same key and nonce used for encryption are required; any tampering
// with the ciphertext fails authentication.
func decryptJSON(ciphertext, nonce, key []byte, v any) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}
