package chain

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenAccountAmount(t *testing.T) {
	// 构造 165 字节标准 token 账户，amount 写在偏移 64
	data := make([]byte, 165)
	binary.LittleEndian.PutUint64(data[64:72], 123_456_789)

	amount, err := TokenAccountAmount(data)
	assert.NoError(t, err)
	assert.Equal(t, uint64(123_456_789), amount)

	// 数据不足
	_, err = TokenAccountAmount(data[:71])
	assert.Error(t, err)
}

func TestMintDecimals(t *testing.T) {
	// 构造 82 字节标准 mint 账户，decimals 写在偏移 44
	data := make([]byte, 82)
	data[44] = 6

	decimals, err := MintDecimals(data)
	assert.NoError(t, err)
	assert.Equal(t, uint8(6), decimals)

	_, err = MintDecimals(data[:44])
	assert.Error(t, err)
}

func TestTokenBalanceUIAmount(t *testing.T) {
	b := TokenBalance{Amount: 1_000_000_000, Decimals: 9}
	assert.Equal(t, 1.0, b.UIAmount())

	b = TokenBalance{Amount: 2_500_000, Decimals: 6}
	assert.Equal(t, 2.5, b.UIAmount())
}
