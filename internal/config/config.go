package config

import (
	"pumpswap-marketcap/pkg/logger"
)

type LogConfig struct {
	Format   string `yaml:"format"`   // 日志格式，支持 "console" 或 "json"
	LogDir   string `yaml:"log_dir"`  // 日志目录（可为相对路径或绝对路径），为空则输出到 stderr
	Level    string `yaml:"level"`    // 日志级别：debug / info / warn / error
	Compress bool   `yaml:"compress"` // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RpcConfig 表示 Solana RPC 节点配置
type RpcConfig struct {
	Endpoint string `yaml:"endpoint"`  // RPC 节点地址，为空时使用 mainnet-beta 公共节点
	TimeoutS int    `yaml:"timeout_s"` // 单次 RPC 调用超时（秒），默认 10
}

// OracleConfig 表示外部价格源（DIA）配置
type OracleConfig struct {
	URL      string `yaml:"url"`       // 资产报价接口地址，为空时使用 DIA 默认 SOL/USD 接口
	TimeoutS int    `yaml:"timeout_s"` // HTTP 超时（秒），默认 10
}

// RedisConfig 表示可选的报价缓存配置（跨多次运行复用 oracle 价格，降低外部 API 频率）
type RedisConfig struct {
	Addr      string `yaml:"addr"`        // Redis 地址，为空则禁用缓存
	PriceTTLS int    `yaml:"price_ttl_s"` // 缓存价格的 TTL（秒），默认 30
}

// Config 是主配置结构体，用于驱动市值计算
type Config struct {
	LogConf    LogConfig    `yaml:"logger"` // 日志配置
	RpcConf    RpcConfig    `yaml:"rpc"`    // RPC 节点配置
	OracleConf OracleConfig `yaml:"oracle"` // 价格源配置
	RedisConf  RedisConfig  `yaml:"redis"`  // 报价缓存配置（可选）

	Mint          string  `yaml:"mint"`           // 目标 token mint（可被命令行参数覆盖）
	QuoteDecimals uint8   `yaml:"quote_decimals"` // 报价币精度，默认 9（WSOL）
	TotalSupply   float64 `yaml:"total_supply"`   // 总供应量（已按精度折算）；<=0 时走 RPC 查询
}
