package svc

import (
	"pumpswap-marketcap/internal/cache"
	"pumpswap-marketcap/internal/chain"
	"pumpswap-marketcap/internal/config"
	"pumpswap-marketcap/internal/oracle"
	"pumpswap-marketcap/pkg/logger"
)

// ServiceContext 包含一次运行所需的全部外部资源
type ServiceContext struct {
	Config     config.Config
	Rpc        *chain.Client
	Oracle     *oracle.Client
	PriceCache *cache.PriceCache // 未配置 Redis 时为 nil
}

// NewServiceContext 按配置构建 RPC 客户端、报价缓存与 oracle 客户端
func NewServiceContext(c config.Config) *ServiceContext {
	priceCache := cache.NewPriceCache(c.RedisConf.Addr, c.RedisConf.PriceTTLS)
	if priceCache != nil {
		logger.Infof("[ServiceContext] 报价缓存已启用: addr=%s", c.RedisConf.Addr)
	}

	return &ServiceContext{
		Config:     c,
		Rpc:        chain.NewClient(c.RpcConf.Endpoint, c.RpcConf.TimeoutS),
		Oracle:     oracle.NewClient(c.OracleConf.URL, c.OracleConf.TimeoutS, priceCache),
		PriceCache: priceCache,
	}
}

// Close 关闭服务上下文中的资源
func (ctx *ServiceContext) Close() {
	if ctx.PriceCache != nil {
		ctx.PriceCache.Close()
	}
}
