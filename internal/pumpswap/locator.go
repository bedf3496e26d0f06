package pumpswap

import (
	"context"
	"errors"
	"math/big"

	"pumpswap-marketcap/internal/chain"
	"pumpswap-marketcap/internal/consts"
	"pumpswap-marketcap/pkg/logger"
	"pumpswap-marketcap/pkg/types"
	"pumpswap-marketcap/pkg/utils"
)

// ErrNoPoolFound 两组过滤条件下都没有找到有流动性的池子
var ErrNoPoolFound = errors.New("no pool found")

const defaultBalanceConcurrency = 8

// Locator 在 Pump.fun AMM program 名下扫描 mint/WSOL 交易对，选出流动性最高的池子
type Locator struct {
	rpc     chain.Reader
	program types.Pubkey
	quote   types.Pubkey

	// 每个候选池要查两个储备账户余额，相互独立，按序并发拉取
	concurrency int
}

func NewLocator(rpc chain.Reader) *Locator {
	return &Locator{
		rpc:         rpc,
		program:     consts.PumpSwapAMMProgram,
		quote:       consts.WSOLMint,
		concurrency: defaultBalanceConcurrency,
	}
}

// candidateScore 一个候选池的流动性评分，余额乘积用大整数避免 u64 溢出
type candidateScore struct {
	pool      types.Pubkey
	liquidity *big.Int
	ok        bool
}

// FindBestPool 搜索 base=mint/quote=WSOL 及反序两组配对，返回流动性（两侧余额乘积）
// 最高的池子地址。相同评分保留先遇到的候选；单个候选的查询失败只跳过该候选。
func (l *Locator) FindBestPool(ctx context.Context, mint types.Pubkey) (types.Pubkey, error) {
	filterSets := [][]chain.MemcmpFilter{
		{
			{Offset: FilterOffsetBaseMint, Bytes: mint.String()},
			{Offset: FilterOffsetQuoteMint, Bytes: l.quote.String()},
		},
		{
			{Offset: FilterOffsetBaseMint, Bytes: l.quote.String()},
			{Offset: FilterOffsetQuoteMint, Bytes: mint.String()},
		},
	}

	var best types.Pubkey
	var found bool
	maxLiquidity := big.NewInt(0)

	for _, filters := range filterSets {
		accounts, err := l.rpc.ProgramAccounts(ctx, l.program, filters)
		if err != nil {
			// 单组过滤查询失败不终止整体搜索，另一组仍可能命中
			logger.Warnf("[PoolLocator] getProgramAccounts 失败，跳过该组过滤: mint=%s, err=%v", mint, err)
			continue
		}

		// 评分并发执行，结果顺序与 accounts 一致，保证同分先见者胜的判定稳定
		scores := utils.ParallelMap(accounts, l.concurrency, func(acct chain.ProgramAccount) candidateScore {
			return l.scoreCandidate(ctx, acct)
		})

		for _, score := range scores {
			if !score.ok {
				continue
			}
			if score.liquidity.Cmp(maxLiquidity) > 0 {
				maxLiquidity = score.liquidity
				best = score.pool
				found = true
			}
		}
	}

	if !found {
		return types.Pubkey{}, ErrNoPoolFound
	}
	return best, nil
}

// scoreCandidate 计算单个候选池的流动性评分，任何失败都只标记该候选无效
func (l *Locator) scoreCandidate(ctx context.Context, acct chain.ProgramAccount) candidateScore {
	if len(acct.Data) < candidateMinLen {
		logger.Warnf("[PoolLocator] 候选池数据长度不足，跳过: pool=%s, len=%d", acct.Pubkey, len(acct.Data))
		return candidateScore{}
	}

	baseAccount, err := types.PubkeyFromBytes(acct.Data[OffsetPoolBaseTokenAccount:])
	if err != nil {
		logger.Warnf("[PoolLocator] base 储备账户抽取失败，跳过: pool=%s, err=%v", acct.Pubkey, err)
		return candidateScore{}
	}
	quoteAccount, err := types.PubkeyFromBytes(acct.Data[OffsetPoolQuoteTokenAccount:])
	if err != nil {
		logger.Warnf("[PoolLocator] quote 储备账户抽取失败，跳过: pool=%s, err=%v", acct.Pubkey, err)
		return candidateScore{}
	}

	baseBalance, err := l.rpc.TokenAccountBalance(ctx, baseAccount)
	if err != nil {
		logger.Warnf("[PoolLocator] base 余额查询失败，跳过候选: pool=%s, account=%s, err=%v", acct.Pubkey, baseAccount, err)
		return candidateScore{}
	}
	quoteBalance, err := l.rpc.TokenAccountBalance(ctx, quoteAccount)
	if err != nil {
		logger.Warnf("[PoolLocator] quote 余额查询失败，跳过候选: pool=%s, account=%s, err=%v", acct.Pubkey, quoteAccount, err)
		return candidateScore{}
	}

	liquidity := new(big.Int).Mul(
		new(big.Int).SetUint64(baseBalance.Amount),
		new(big.Int).SetUint64(quoteBalance.Amount),
	)
	return candidateScore{pool: acct.Pubkey, liquidity: liquidity, ok: true}
}
