package pumpswap

import (
	"context"
	"fmt"

	"pumpswap-marketcap/internal/chain"
	"pumpswap-marketcap/pkg/types"

	"github.com/near/borsh-go"
)

// Pump.fun AMM 池子账户布局（Anchor 账户，前 8 字节为 discriminator）：
//
//	[0:8]     discriminator
//	[8]       pool_bump (u8)
//	[9:11]    index (u16 LE)
//	[11:43]   creator
//	[43:75]   base_mint
//	[75:107]  quote_mint
//	[107:139] lp_mint
//	[139:171] pool_base_token_account
//	[171:203] pool_quote_token_account
//	[203:211] lp_supply (u64 LE)
//	[211:243] coin_creator
//
// 偏移属于链上协议的一部分，memcmp 过滤与储备账户抽取都依赖它们精确匹配。
const (
	accountDiscriminatorLen = 8

	// memcmp 过滤偏移（池子配对扫描）
	FilterOffsetBaseMint  = 43
	FilterOffsetQuoteMint = 75

	// 流动性评分阶段直接从原始字节抽取的储备账户偏移
	OffsetPoolBaseTokenAccount  = 139
	OffsetPoolQuoteTokenAccount = 171

	// 候选评分只需要读到 quote 储备账户结尾
	candidateMinLen = OffsetPoolQuoteTokenAccount + types.PubkeyLength

	poolStateLen = 243
)

// PoolState Pump.fun AMM 池子账户的完整解码结构
type PoolState struct {
	PoolBump              uint8
	Index                 uint16
	Creator               types.Pubkey
	BaseMint              types.Pubkey
	QuoteMint             types.Pubkey
	LpMint                types.Pubkey
	PoolBaseTokenAccount  types.Pubkey
	PoolQuoteTokenAccount types.Pubkey
	LpSupply              uint64
	CoinCreator           types.Pubkey
}

// PoolKeys 标识一个池子参与定价所需的全部地址，获取后不再变更
type PoolKeys struct {
	Amm                   types.Pubkey
	BaseMint              types.Pubkey
	QuoteMint             types.Pubkey
	PoolBaseTokenAccount  types.Pubkey
	PoolQuoteTokenAccount types.Pubkey
	Creator               types.Pubkey
}

// DecodePoolState 按固定布局解码池子账户原始字节
func DecodePoolState(data []byte) (*PoolState, error) {
	if len(data) < poolStateLen {
		return nil, fmt.Errorf("pool account data too short: got=%d want>=%d", len(data), poolStateLen)
	}
	state := &PoolState{}
	if err := borsh.Deserialize(state, data[accountDiscriminatorLen:]); err != nil {
		return nil, fmt.Errorf("pool account deserialize failed: %w", err)
	}
	return state, nil
}

// FetchPoolKeys 拉取池子账户并解码出定价所需的地址集合，任何失败对调用方都是致命的
func FetchPoolKeys(ctx context.Context, rpc chain.Reader, pool types.Pubkey) (*PoolKeys, error) {
	data, err := rpc.AccountData(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("fetch pool keys failed: pool=%s: %w", pool, err)
	}
	state, err := DecodePoolState(data)
	if err != nil {
		return nil, fmt.Errorf("decode pool keys failed: pool=%s: %w", pool, err)
	}
	return &PoolKeys{
		Amm:                   pool,
		BaseMint:              state.BaseMint,
		QuoteMint:             state.QuoteMint,
		PoolBaseTokenAccount:  state.PoolBaseTokenAccount,
		PoolQuoteTokenAccount: state.PoolQuoteTokenAccount,
		Creator:               state.CoinCreator,
	}, nil
}
