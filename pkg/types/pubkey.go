package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeyLength Solana 公钥固定长度（字节）
const PubkeyLength = 32

type Pubkey [PubkeyLength]byte

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) Equals(other Pubkey) bool {
	return p == other
}

// IsZero 判断是否为全零地址（未初始化 / 原生 SOL 占位）
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// TryPubkeyFromBase58 解析 base58 字符串为 Pubkey，失败时返回 error（用于不信任输入路径，如 CLI 参数）
func TryPubkeyFromBase58(s string) (Pubkey, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("failed to decode base58 pubkey %q: %w", s, err)
	}
	if len(data) != PubkeyLength {
		return Pubkey{}, fmt.Errorf("invalid pubkey length: got %d, want %d, input=%q", len(data), PubkeyLength, s)
	}
	var p Pubkey
	copy(p[:], data)
	return p, nil
}

// PubkeyFromBase58 解析 base58 字符串为 Pubkey，失败时 panic（仅用于常量初始化）
func PubkeyFromBase58(s string) Pubkey {
	p, err := TryPubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PubkeyFromBytes 从原始字节切片截取 Pubkey，长度不足时返回 error
func PubkeyFromBytes(data []byte) (Pubkey, error) {
	if len(data) < PubkeyLength {
		return Pubkey{}, fmt.Errorf("invalid pubkey bytes: got %d, want %d", len(data), PubkeyLength)
	}
	var p Pubkey
	copy(p[:], data[:PubkeyLength])
	return p, nil
}
