package cache

import (
	"context"
	"time"

	"pumpswap-marketcap/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Redis key 与 TTL（进程一次性运行，缓存只在多次调用之间生效）
const (
	nativePriceKey  = "marketcap:oracle:native_usd"
	defaultPriceTTL = 30 * time.Second
)

// PriceCache 基于 Redis 的 oracle 报价缓存，降低短时间内重复运行对外部 API 的压力。
// 缓存不可用时所有操作降级为未命中，绝不影响主流程。
type PriceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPriceCache 创建报价缓存，addr 为空时返回 nil（禁用缓存）
func NewPriceCache(addr string, ttlS int) *PriceCache {
	if addr == "" {
		return nil
	}
	ttl := defaultPriceTTL
	if ttlS > 0 {
		ttl = time.Duration(ttlS) * time.Second
	}
	return &PriceCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// GetNativeUSD 读取缓存的原生资产 USD 价格，未命中或出错返回 false
func (c *PriceCache) GetNativeUSD(ctx context.Context) (float64, bool) {
	price, err := c.rdb.Get(ctx, nativePriceKey).Float64()
	switch {
	case err == redis.Nil:
		return 0, false
	case err != nil:
		logger.Warnf("[PriceCache] redis get 失败，按未命中处理: %v", err)
		return 0, false
	default:
		return price, true
	}
}

// PutNativeUSD 写入价格，写失败只告警
func (c *PriceCache) PutNativeUSD(ctx context.Context, price float64) {
	if err := c.rdb.Set(ctx, nativePriceKey, price, c.ttl).Err(); err != nil {
		logger.Warnf("[PriceCache] redis set 失败: %v", err)
	}
}

// Close 释放 Redis 连接
func (c *PriceCache) Close() {
	if err := c.rdb.Close(); err != nil {
		logger.Warnf("[PriceCache] redis close 失败: %v", err)
	}
}
