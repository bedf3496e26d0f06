package chain

import (
	"encoding/binary"
	"fmt"
)

// SPL Token 账户与 Mint 账户的固定布局偏移。
// 参考: https://github.com/solana-program/token/blob/main/program/src/state.rs
const (
	// Token 账户: mint(32) + owner(32) + amount(u64 LE)
	tokenAccountAmountOffset = 64
	tokenAccountMinLen       = tokenAccountAmountOffset + 8

	// Mint 账户: mint_authority(COption, 36) + supply(u64, 8) + decimals(u8)
	mintDecimalsOffset = 44
	mintAccountMinLen  = mintDecimalsOffset + 1
)

// TokenAccountAmount 从原始 token 账户字节中取出余额（最小单位整数）
func TokenAccountAmount(data []byte) (uint64, error) {
	if len(data) < tokenAccountMinLen {
		return 0, fmt.Errorf("token account data too short: got=%d want>=%d", len(data), tokenAccountMinLen)
	}
	return binary.LittleEndian.Uint64(data[tokenAccountAmountOffset : tokenAccountAmountOffset+8]), nil
}

// MintDecimals 从原始 mint 账户字节中取出精度
func MintDecimals(data []byte) (uint8, error) {
	if len(data) < mintAccountMinLen {
		return 0, fmt.Errorf("mint account data too short: got=%d want>=%d", len(data), mintAccountMinLen)
	}
	return data[mintDecimalsOffset], nil
}
