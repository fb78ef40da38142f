package types

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
)

// ============================================================================
//                              IPAddress - 主机地址
// ============================================================================

// IPAddress IP 主机地址
//
// 零值表示未初始化。IPv4 映射的 IPv6 地址（::ffff:a.b.c.d）在构造时
// 统一还原为 IPv4，保证地址族判断与比较一致。
type IPAddress struct {
	addr netip.Addr
}

// NewIPAddress 从 netip.Addr 创建 IPAddress
func NewIPAddress(addr netip.Addr) IPAddress {
	return IPAddress{addr: addr.Unmap()}
}

// ParseIPAddress 解析 IP 地址字符串
func ParseIPAddress(s string) (IPAddress, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return IPAddress{}, fmt.Errorf("%w: %v", ErrInvalidSocketAddress, err)
	}
	return NewIPAddress(addr), nil
}

// IsInitialized 是否已初始化
func (a IPAddress) IsInitialized() bool {
	return a.addr.IsValid()
}

// IsIPv4 是否为 IPv4 地址
func (a IPAddress) IsIPv4() bool {
	return a.addr.Is4()
}

// IsIPv6 是否为 IPv6 地址
func (a IPAddress) IsIPv6() bool {
	return a.addr.Is6()
}

// Equal 比较两个地址是否相等（含 IPv6 zone）
func (a IPAddress) Equal(other IPAddress) bool {
	return a.addr == other.addr
}

// InSameSubnet 判断两个地址的前 maskBits 位是否相同
//
// 不同地址族、未初始化地址或 maskBits 超出地址位宽时返回 false。
func (a IPAddress) InSameSubnet(other IPAddress, maskBits int) bool {
	if !a.IsInitialized() || !other.IsInitialized() {
		return false
	}
	if a.addr.Is4() != other.addr.Is4() {
		return false
	}

	p, err := a.addr.WithZone("").Prefix(maskBits)
	if err != nil {
		return false
	}
	return p.Contains(other.addr.WithZone(""))
}

// Addr 返回底层 netip.Addr
func (a IPAddress) Addr() netip.Addr {
	return a.addr
}

// String 返回地址字符串，未初始化时返回 "invalid IP"
func (a IPAddress) String() string {
	return a.addr.String()
}

// ============================================================================
//                              SocketAddress - 端点地址
// ============================================================================

// SocketAddress 传输层端点地址（主机 + 端口）
//
// 零值表示未初始化，可安全比较与复制。
type SocketAddress struct {
	host IPAddress
	port uint16
}

// NewSocketAddress 创建端点地址
func NewSocketAddress(host IPAddress, port uint16) SocketAddress {
	return SocketAddress{host: host, port: port}
}

// SocketAddressFromAddrPort 从 netip.AddrPort 创建端点地址
func SocketAddressFromAddrPort(ap netip.AddrPort) SocketAddress {
	return SocketAddress{host: NewIPAddress(ap.Addr()), port: ap.Port()}
}

// ParseSocketAddress 解析 "host:port" 格式的端点地址
//
// 支持格式：
//   - 1.2.3.4:80
//   - [::1]:80
func ParseSocketAddress(s string) (SocketAddress, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return SocketAddress{}, fmt.Errorf("%w: %q: %v", ErrInvalidSocketAddress, s, err)
	}

	ip, err := ParseIPAddress(host)
	if err != nil {
		return SocketAddress{}, err
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return SocketAddress{}, fmt.Errorf("%w: invalid port %q", ErrInvalidSocketAddress, portStr)
	}

	return NewSocketAddress(ip, uint16(port)), nil
}

// SocketAddressFromNetAddr 从 net.Addr 创建端点地址
//
// 支持 *net.UDPAddr（QUIC 连接的 RemoteAddr）与 *net.TCPAddr。
func SocketAddressFromNetAddr(addr net.Addr) (SocketAddress, error) {
	switch a := addr.(type) {
	case *net.UDPAddr:
		if a == nil {
			return SocketAddress{}, fmt.Errorf("%w: nil UDP address", ErrInvalidSocketAddress)
		}
		return SocketAddressFromAddrPort(a.AddrPort()), nil
	case *net.TCPAddr:
		if a == nil {
			return SocketAddress{}, fmt.Errorf("%w: nil TCP address", ErrInvalidSocketAddress)
		}
		return SocketAddressFromAddrPort(a.AddrPort()), nil
	default:
		return SocketAddress{}, fmt.Errorf("%w: %T", ErrUnsupportedNetAddr, addr)
	}
}

// IsInitialized 是否已初始化
func (s SocketAddress) IsInitialized() bool {
	return s.host.IsInitialized()
}

// Host 返回主机地址
func (s SocketAddress) Host() IPAddress {
	return s.host
}

// Port 返回端口
func (s SocketAddress) Port() uint16 {
	return s.port
}

// Equal 主机与端口均相等
func (s SocketAddress) Equal(other SocketAddress) bool {
	return s.host.Equal(other.host) && s.port == other.port
}

// AddrPort 返回 netip.AddrPort 表示
func (s SocketAddress) AddrPort() netip.AddrPort {
	return netip.AddrPortFrom(s.host.addr, s.port)
}

// String 返回 "host:port" 格式
func (s SocketAddress) String() string {
	if !s.IsInitialized() {
		return "uninitialized"
	}
	return s.AddrPort().String()
}
