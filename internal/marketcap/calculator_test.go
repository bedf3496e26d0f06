package marketcap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	// 1.0 token / 2.0 SOL 储备，SOL=100 USD，供应量 100 万
	data, err := Calculate(1_000_000_000, 2_000_000_000, 9, 9, 100.0, 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, data.TokenPriceSOL)
	assert.Equal(t, 200.0, data.TokenPriceUSD)
	assert.Equal(t, 200_000_000.0, data.MarketCapUSD)
}

func TestCalculate_MixedDecimals(t *testing.T) {
	// token 精度 6，quote 精度 9
	data, err := Calculate(4_000_000, 1_000_000_000, 6, 9, 50.0, 1_000)
	assert.NoError(t, err)
	assert.Equal(t, 0.25, data.TokenPriceSOL)
	assert.Equal(t, 12.5, data.TokenPriceUSD)
	assert.Equal(t, 12_500.0, data.MarketCapUSD)
}

func TestCalculate_EmptyPool(t *testing.T) {
	_, err := Calculate(0, 2_000_000_000, 9, 9, 100.0, 1_000_000)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestCalculate_Deterministic(t *testing.T) {
	// 纯函数：相同输入必须 bit 级一致
	a, err := Calculate(123_456_789, 987_654_321, 9, 9, 147.123456, 998_877_665.5)
	assert.NoError(t, err)
	b, err := Calculate(123_456_789, 987_654_321, 9, 9, 147.123456, 998_877_665.5)
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}
