package nullcrypto

import "errors"

var (
	// ErrCiphertextTooShort 密文短于标签长度
	ErrCiphertextTooShort = errors.New("nullcrypto: ciphertext shorter than tag")

	// ErrTagMismatch 完整性标签不匹配
	ErrTagMismatch = errors.New("nullcrypto: tag mismatch")
)
