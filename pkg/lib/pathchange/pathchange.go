// Package pathchange 判断对端地址变化的类型
//
// QUIC 连接在收到来自新地址的数据包时，需要区分良性变化（NAT 重绑定、
// 端口变化）与真正的连接迁移（地址族变化、跨子网变化）。本包提供
// 纯函数形式的判定，不做任何网络 I/O。
package pathchange

import "github.com/dep2p/go-quicutil/pkg/types"

// SubnetMaskLength IPv4 NAT 重绑定判定使用的固定子网前缀长度
const SubnetMaskLength = 24

// DetermineAddressChangeType 判定从 oldAddr 到 newAddr 的变化类型
//
// 判定顺序：
//  1. 任一地址未初始化，或两者完全相同 → NoChange
//  2. 主机相同仅端口不同 → PortChange
//  3. IPv4 → IPv6 → IPv4ToIPv6Change
//  4. 原地址为 IPv6 → IPv6ToIPv4Change 或 IPv6ToIPv6Change
//  5. IPv4 → IPv4：同一 /24 子网 → IPv4SubnetChange，否则 IPv4ToIPv4Change
//
// IPv6 分支不做子网判定。
func DetermineAddressChangeType(oldAddr, newAddr types.SocketAddress) types.AddressChangeType {
	if !oldAddr.IsInitialized() || !newAddr.IsInitialized() || oldAddr.Equal(newAddr) {
		return types.NoChange
	}

	if oldAddr.Host().Equal(newAddr.Host()) {
		return types.PortChange
	}

	oldIsIPv4 := oldAddr.Host().IsIPv4()
	newIsIPv4 := newAddr.Host().IsIPv4()
	if oldIsIPv4 && !newIsIPv4 {
		return types.IPv4ToIPv6Change
	}

	if !oldIsIPv4 {
		if newIsIPv4 {
			return types.IPv6ToIPv4Change
		}
		return types.IPv6ToIPv6Change
	}

	// 子网部分未变，视为 NAT 重绑定
	if oldAddr.Host().InSameSubnet(newAddr.Host(), SubnetMaskLength) {
		return types.IPv4SubnetChange
	}

	return types.IPv4ToIPv4Change
}

// IsMigration 是否为真正的连接迁移
//
// NoChange、PortChange 与 IPv4SubnetChange 视为 NAT 引起的良性变化。
func IsMigration(t types.AddressChangeType) bool {
	switch t {
	case types.NoChange, types.PortChange, types.IPv4SubnetChange:
		return false
	default:
		return true
	}
}
