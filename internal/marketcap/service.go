package marketcap

import (
	"context"
	"errors"
	"fmt"

	"pumpswap-marketcap/internal/chain"
	"pumpswap-marketcap/internal/consts"
	"pumpswap-marketcap/internal/pumpswap"
	"pumpswap-marketcap/pkg/logger"
	"pumpswap-marketcap/pkg/types"
)

// ErrSupplyUnavailable RPC 查不到供应量或供应量为零
var ErrSupplyUnavailable = errors.New("token supply unavailable")

// PriceSource 原生资产 USD 报价来源
type PriceSource interface {
	NativeUSDPrice(ctx context.Context) (float64, error)
}

// Options 一次市值计算的输入参数
type Options struct {
	Mint          types.Pubkey
	QuoteDecimals uint8   // 0 时取 WSOL 默认精度
	TotalSupply   float64 // <=0 时走 RPC 查询
}

// Service 串联供应量解析、池子定位、key 解码、储备读取、oracle 报价与市值计算。
// 初始化阶段任何一步失败都直接终止。
type Service struct {
	rpc    chain.Reader
	oracle PriceSource

	mint          types.Pubkey
	quoteDecimals uint8
	tokenDecimals uint8
	totalSupply   float64
	keys          *pumpswap.PoolKeys
}

// NewService 完成一次性的初始化流水：供应量 → 池子定位 → key 解码 → mint 精度
func NewService(ctx context.Context, rpc chain.Reader, oracle PriceSource, opt Options) (*Service, error) {
	s := &Service{
		rpc:           rpc,
		oracle:        oracle,
		mint:          opt.Mint,
		quoteDecimals: opt.QuoteDecimals,
		totalSupply:   opt.TotalSupply,
	}
	if s.quoteDecimals == 0 {
		s.quoteDecimals = consts.WSOLDecimals
	}

	// 1. 供应量：调用方给定则直接使用，否则按 UI 数量查询
	if s.totalSupply <= 0 {
		supply, err := rpc.TokenSupply(ctx, s.mint)
		if err != nil {
			return nil, fmt.Errorf("%w: mint=%s: %v", ErrSupplyUnavailable, s.mint, err)
		}
		s.totalSupply = supply.UIAmount()
		if s.totalSupply == 0 {
			return nil, fmt.Errorf("%w: mint=%s: supply is zero", ErrSupplyUnavailable, s.mint)
		}
	}

	// 2. 池子定位：不存在配对池对整次运行是致命的
	pool, err := pumpswap.NewLocator(rpc).FindBestPool(ctx, s.mint)
	if err != nil {
		return nil, fmt.Errorf("locate pool failed: mint=%s: %w", s.mint, err)
	}
	logger.Infof("[MarketCap] 使用池子: %s", pool)

	// 3. 解码池子 key
	s.keys, err = pumpswap.FetchPoolKeys(ctx, rpc, pool)
	if err != nil {
		return nil, err
	}

	// 4. token 精度取自 mint 账户原始字节
	mintData, err := rpc.AccountData(ctx, s.mint)
	if err != nil {
		return nil, fmt.Errorf("fetch mint account failed: mint=%s: %w", s.mint, err)
	}
	s.tokenDecimals, err = chain.MintDecimals(mintData)
	if err != nil {
		return nil, fmt.Errorf("decode mint account failed: mint=%s: %w", s.mint, err)
	}

	return s, nil
}

// PoolKeys 返回本次运行选中的池子地址集合
func (s *Service) PoolKeys() *pumpswap.PoolKeys {
	return s.keys
}

// MarketCap 读取储备、获取报价并计算市值
func (s *Service) MarketCap(ctx context.Context) (MarketCapData, error) {
	baseReserve, quoteReserve, err := s.readReserves(ctx)
	if err != nil {
		return MarketCapData{}, err
	}

	nativeUSD, err := s.oracle.NativeUSDPrice(ctx)
	if err != nil {
		return MarketCapData{}, fmt.Errorf("fetch oracle price failed: %w", err)
	}

	return Calculate(baseReserve, quoteReserve, s.tokenDecimals, s.quoteDecimals, nativeUSD, s.totalSupply)
}

// readReserves 一次批量查询读出两侧储备的原始整数余额
func (s *Service) readReserves(ctx context.Context) (uint64, uint64, error) {
	accounts := []types.Pubkey{s.keys.PoolBaseTokenAccount, s.keys.PoolQuoteTokenAccount}
	datas, err := s.rpc.MultipleAccountData(ctx, accounts)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch reserves failed: pool=%s: %w", s.keys.Amm, err)
	}

	baseReserve, err := chain.TokenAccountAmount(datas[0])
	if err != nil {
		return 0, 0, fmt.Errorf("decode base reserve failed: account=%s: %w", s.keys.PoolBaseTokenAccount, err)
	}
	quoteReserve, err := chain.TokenAccountAmount(datas[1])
	if err != nil {
		return 0, 0, fmt.Errorf("decode quote reserve failed: account=%s: %w", s.keys.PoolQuoteTokenAccount, err)
	}
	return baseReserve, quoteReserve, nil
}
