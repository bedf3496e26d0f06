package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"pumpswap-marketcap/internal/config"
	"pumpswap-marketcap/internal/marketcap"
	"pumpswap-marketcap/internal/svc"
	"pumpswap-marketcap/pkg/logger"
	"pumpswap-marketcap/pkg/types"

	"github.com/dustin/go-humanize"
	"github.com/zeromicro/go-zero/core/conf"
)

var (
	configFile = flag.String("f", "etc/marketcap.yaml", "the config file")
	mintFlag   = flag.String("mint", "", "target token mint (overrides config)")
	supplyFlag = flag.Float64("supply", 0, "total supply, decimal-adjusted (overrides config; 0 = RPC lookup)")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	logger.MustInit(c.LogConf.ToLogOption())
	defer logger.Sync()

	if *mintFlag != "" {
		c.Mint = *mintFlag
	}
	if *supplyFlag > 0 {
		c.TotalSupply = *supplyFlag
	}
	if c.Mint == "" {
		logger.Errorf("缺少目标 mint：请通过 -mint 参数或配置文件指定")
		os.Exit(1)
	}

	mint, err := types.TryPubkeyFromBase58(c.Mint)
	if err != nil {
		logger.Errorf("mint 参数非法: %v", err)
		os.Exit(1)
	}

	serviceContext := svc.NewServiceContext(c)
	defer serviceContext.Close()

	ctx := context.Background()

	service, err := marketcap.NewService(ctx, serviceContext.Rpc, serviceContext.Oracle, marketcap.Options{
		Mint:          mint,
		QuoteDecimals: c.QuoteDecimals,
		TotalSupply:   c.TotalSupply,
	})
	if err != nil {
		logger.Errorf("初始化失败: %v", err)
		os.Exit(1)
	}

	data, err := service.MarketCap(ctx)
	if err != nil {
		logger.Errorf("市值计算失败: %v", err)
		os.Exit(1)
	}

	fmt.Printf("Token price (SOL): %.10f SOL\n", data.TokenPriceSOL)
	fmt.Printf("Token price (USD): $%.10f\n", data.TokenPriceUSD)
	fmt.Printf("Market cap (USD):  $%s\n", humanize.FormatFloat("#,###.##", data.MarketCapUSD))
}
