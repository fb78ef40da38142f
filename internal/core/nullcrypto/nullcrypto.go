package nullcrypto

import (
	"github.com/dep2p/go-quicutil/internal/util/logger"
	"github.com/dep2p/go-quicutil/pkg/lib/fnv1a"
	"github.com/dep2p/go-quicutil/pkg/types"
)

var log = logger.Logger("nullcrypto")

// TagSize 完整性标签长度
const TagSize = fnv1a.ShortSize

// tagMask 清除摘要最高 32 位，与 12 字节序列化保留的位一致
var tagMask = fnv1a.MakeUint128(0, 0xFFFFFFFF).Lsh(96).Not()

// computeHash 计算 (ad, data, 视角标签) 的截断摘要
func computeHash(p types.Perspective, associatedData, data []byte) fnv1a.Uint128 {
	hash := fnv1a.Hash128Three(associatedData, data, []byte(p.String()))
	return hash.And(tagMask)
}

// ============================================================================
//                              Encrypter
// ============================================================================

// Encrypter 空加密发送端
type Encrypter struct {
	perspective types.Perspective
}

// NewEncrypter 创建发送端，p 为本端视角
func NewEncrypter(p types.Perspective) *Encrypter {
	return &Encrypter{perspective: p}
}

// Perspective 返回本端视角
func (e *Encrypter) Perspective() types.Perspective {
	return e.perspective
}

// Level 返回加密级别
func (e *Encrypter) Level() types.EncryptionLevel {
	return types.EncryptionNone
}

// Overhead 每个数据包增加的字节数
func (e *Encrypter) Overhead() int {
	return TagSize
}

// Seal 将 标签 || 明文 追加到 dst 并返回
func (e *Encrypter) Seal(dst, associatedData, plaintext []byte) []byte {
	hash := computeHash(e.perspective, associatedData, plaintext)
	dst = fnv1a.AppendUint128Short(dst, hash)
	return append(dst, plaintext...)
}

// ============================================================================
//                              Decrypter
// ============================================================================

// Decrypter 空加密接收端
type Decrypter struct {
	perspective types.Perspective
}

// NewDecrypter 创建接收端，p 为本端视角
func NewDecrypter(p types.Perspective) *Decrypter {
	return &Decrypter{perspective: p}
}

// Perspective 返回本端视角
func (d *Decrypter) Perspective() types.Perspective {
	return d.perspective
}

// Level 返回加密级别
func (d *Decrypter) Level() types.EncryptionLevel {
	return types.EncryptionNone
}

// Open 校验标签并将明文追加到 dst 返回
//
// 标签由对端按其视角计算。
func (d *Decrypter) Open(dst, associatedData, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < TagSize {
		return nil, ErrCiphertextTooShort
	}

	received, err := fnv1a.ParseUint128Short(ciphertext[:TagSize])
	if err != nil {
		return nil, err
	}

	plaintext := ciphertext[TagSize:]
	expected := computeHash(d.perspective.Peer(), associatedData, plaintext)
	if !received.Equal(expected) {
		log.Debug("空加密标签校验失败",
			"perspective", d.perspective,
			"expected", expected,
			"received", received,
			"len", len(plaintext))
		return nil, ErrTagMismatch
	}

	return append(dst, plaintext...), nil
}
