package types

import "errors"

// ============================================================================
//                              地址相关错误
// ============================================================================

var (
	// ErrInvalidSocketAddress 无效的端点地址
	ErrInvalidSocketAddress = errors.New("invalid socket address")

	// ErrUnsupportedNetAddr 不支持的 net.Addr 类型
	ErrUnsupportedNetAddr = errors.New("unsupported net.Addr type")
)
