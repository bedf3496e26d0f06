package marketcap

import (
	"errors"
	"math"
)

// ErrEmptyPool base 侧储备为零，无法定价（除零保护）
var ErrEmptyPool = errors.New("empty pool, cannot price")

// MarketCapData 一次计算的输出，保留完整浮点精度，展示时才做舍入
type MarketCapData struct {
	TokenPriceSOL float64 // token 价格（SOL 计价）
	TokenPriceUSD float64 // token 价格（USD 计价）
	MarketCapUSD  float64 // 市值（USD）
}

// Calculate 纯函数：由储备、精度、oracle 价格与总供应量推出价格与市值。
// 相同输入产出 bit 级相同输出。
func Calculate(baseReserve, quoteReserve uint64, tokenDecimals, quoteDecimals uint8, nativeUSDPrice, totalSupply float64) (MarketCapData, error) {
	tokenAmount := float64(baseReserve) / math.Pow10(int(tokenDecimals))
	quoteAmount := float64(quoteReserve) / math.Pow10(int(quoteDecimals))

	if tokenAmount == 0 {
		return MarketCapData{}, ErrEmptyPool
	}

	priceSOL := quoteAmount / tokenAmount
	priceUSD := priceSOL * nativeUSDPrice
	return MarketCapData{
		TokenPriceSOL: priceSOL,
		TokenPriceUSD: priceUSD,
		MarketCapUSD:  priceUSD * totalSupply,
	}, nil
}
