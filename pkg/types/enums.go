package types

import "strings"

// ============================================================================
//                              AddressChangeType - 对端地址变化类型
// ============================================================================

// AddressChangeType 对端地址变化类型
//
// 由 pathchange.DetermineAddressChangeType 产生，不会出现枚举以外的取值。
type AddressChangeType int

const (
	// NoChange 地址未变化，或任一地址未初始化
	NoChange AddressChangeType = iota
	// PortChange 仅端口变化
	PortChange
	// IPv4SubnetChange IPv4 地址在同一 /24 子网内变化（通常由 NAT 重绑定引起）
	IPv4SubnetChange
	// IPv4ToIPv6Change IPv4 迁移到 IPv6
	IPv4ToIPv6Change
	// IPv6ToIPv4Change IPv6 迁移到 IPv4
	IPv6ToIPv4Change
	// IPv6ToIPv6Change IPv6 地址变化
	IPv6ToIPv6Change
	// IPv4ToIPv4Change IPv4 地址跨子网变化
	IPv4ToIPv4Change
)

// AllAddressChangeTypes 全部地址变化类型，按枚举顺序
var AllAddressChangeTypes = []AddressChangeType{
	NoChange,
	PortChange,
	IPv4SubnetChange,
	IPv4ToIPv6Change,
	IPv6ToIPv4Change,
	IPv6ToIPv6Change,
	IPv4ToIPv4Change,
}

// String 返回协议层使用的标签
func (t AddressChangeType) String() string {
	switch t {
	case NoChange:
		return "NO_CHANGE"
	case PortChange:
		return "PORT_CHANGE"
	case IPv4SubnetChange:
		return "IPV4_SUBNET_CHANGE"
	case IPv4ToIPv6Change:
		return "IPV4_TO_IPV6_CHANGE"
	case IPv6ToIPv4Change:
		return "IPV6_TO_IPV4_CHANGE"
	case IPv6ToIPv6Change:
		return "IPV6_TO_IPV6_CHANGE"
	case IPv4ToIPv4Change:
		return "IPV4_TO_IPV4_CHANGE"
	default:
		return "INVALID_PEER_ADDRESS_CHANGE_TYPE"
	}
}

// ============================================================================
//                              EncryptionLevel - 加密级别
// ============================================================================

// EncryptionLevel 数据包加密级别
type EncryptionLevel int

const (
	// EncryptionNone 未加密（空加密，仅完整性校验）
	EncryptionNone EncryptionLevel = iota
	// EncryptionInitial 初始密钥
	EncryptionInitial
	// EncryptionForwardSecure 前向安全密钥
	EncryptionForwardSecure
	// NumEncryptionLevels 级别数量
	NumEncryptionLevels
)

// String 返回加密级别标签
func (l EncryptionLevel) String() string {
	switch l {
	case EncryptionNone:
		return "ENCRYPTION_NONE"
	case EncryptionInitial:
		return "ENCRYPTION_INITIAL"
	case EncryptionForwardSecure:
		return "ENCRYPTION_FORWARD_SECURE"
	case NumEncryptionLevels:
		return "NUM_ENCRYPTION_LEVELS"
	default:
		return "INVALID_ENCRYPTION_LEVEL"
	}
}

// ============================================================================
//                              TransmissionType - 传输类型
// ============================================================================

// TransmissionType 数据包（重）传输原因
type TransmissionType int

const (
	// NotRetransmission 首次发送
	NotRetransmission TransmissionType = iota
	// HandshakeRetransmission 握手包重传
	HandshakeRetransmission
	// LossRetransmission 丢包重传
	LossRetransmission
	// AllUnackedRetransmission 重传全部未确认数据
	AllUnackedRetransmission
	// AllInitialRetransmission 重传全部初始加密数据
	AllInitialRetransmission
	// RTORetransmission 超时重传
	RTORetransmission
	// TLPRetransmission 尾部丢包探测重传
	TLPRetransmission
)

// String 返回传输类型标签
func (t TransmissionType) String() string {
	switch t {
	case NotRetransmission:
		return "NOT_RETRANSMISSION"
	case HandshakeRetransmission:
		return "HANDSHAKE_RETRANSMISSION"
	case LossRetransmission:
		return "LOSS_RETRANSMISSION"
	case AllUnackedRetransmission:
		return "ALL_UNACKED_RETRANSMISSION"
	case AllInitialRetransmission:
		return "ALL_INITIAL_RETRANSMISSION"
	case RTORetransmission:
		return "RTO_RETRANSMISSION"
	case TLPRetransmission:
		return "TLP_RETRANSMISSION"
	default:
		return "INVALID_TRANSMISSION_TYPE"
	}
}

// ============================================================================
//                              Perspective - 连接视角
// ============================================================================

// Perspective 本端在连接中的角色
type Perspective int

const (
	// PerspectiveClient 客户端
	PerspectiveClient Perspective = iota
	// PerspectiveServer 服务端
	PerspectiveServer
)

// String 返回视角标签
//
// 该标签同时作为空加密完整性哈希的第三个输入，不能修改。
func (p Perspective) String() string {
	switch p {
	case PerspectiveClient:
		return "Client"
	case PerspectiveServer:
		return "Server"
	default:
		return "Unknown"
	}
}

// Peer 返回对端视角
func (p Perspective) Peer() Perspective {
	if p == PerspectiveClient {
		return PerspectiveServer
	}
	return PerspectiveClient
}

// ParsePerspective 解析视角字符串（"client" / "server"，不区分大小写）
func ParsePerspective(s string) (Perspective, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client":
		return PerspectiveClient, true
	case "server":
		return PerspectiveServer, true
	default:
		return PerspectiveClient, false
	}
}
