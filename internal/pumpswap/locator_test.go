package pumpswap

import (
	"context"
	"errors"
	"testing"

	"pumpswap-marketcap/internal/chain"
	"pumpswap-marketcap/internal/consts"
	"pumpswap-marketcap/pkg/types"

	"github.com/stretchr/testify/assert"
)

// fakeReader 测试用链上只读桩：按过滤条件返回预置候选，按账户地址返回预置余额
type fakeReader struct {
	// key 为 filters[0].Bytes（第一组是 mint，第二组是 WSOL）
	programAccounts map[string][]chain.ProgramAccount
	programErr      map[string]error

	balances    map[types.Pubkey]uint64
	balanceErrs map[types.Pubkey]error

	accountData map[types.Pubkey][]byte
}

func (f *fakeReader) TokenSupply(ctx context.Context, mint types.Pubkey) (chain.TokenBalance, error) {
	return chain.TokenBalance{}, errors.New("not implemented")
}

func (f *fakeReader) TokenAccountBalance(ctx context.Context, account types.Pubkey) (chain.TokenBalance, error) {
	if err, ok := f.balanceErrs[account]; ok {
		return chain.TokenBalance{}, err
	}
	amount, ok := f.balances[account]
	if !ok {
		return chain.TokenBalance{}, errors.New("unknown token account")
	}
	return chain.TokenBalance{Amount: amount, Decimals: 9}, nil
}

func (f *fakeReader) AccountData(ctx context.Context, account types.Pubkey) ([]byte, error) {
	data, ok := f.accountData[account]
	if !ok {
		return nil, errors.New("account not found")
	}
	return data, nil
}

func (f *fakeReader) MultipleAccountData(ctx context.Context, accounts []types.Pubkey) ([][]byte, error) {
	result := make([][]byte, len(accounts))
	for i, account := range accounts {
		data, ok := f.accountData[account]
		if !ok {
			return nil, errors.New("account not found")
		}
		result[i] = data
	}
	return result, nil
}

func (f *fakeReader) ProgramAccounts(ctx context.Context, program types.Pubkey, filters []chain.MemcmpFilter) ([]chain.ProgramAccount, error) {
	key := filters[0].Bytes
	if err, ok := f.programErr[key]; ok {
		return nil, err
	}
	return f.programAccounts[key], nil
}

var _ chain.Reader = (*fakeReader)(nil)

// candidate 构造一个候选池账户：储备账户地址写在协议偏移上
func candidate(pool, baseAccount, quoteAccount types.Pubkey) chain.ProgramAccount {
	data := make([]byte, poolStateLen)
	copy(data[OffsetPoolBaseTokenAccount:], baseAccount[:])
	copy(data[OffsetPoolQuoteTokenAccount:], quoteAccount[:])
	return chain.ProgramAccount{Pubkey: pool, Data: data}
}

func TestFindBestPool_PicksHighestLiquidity(t *testing.T) {
	mint := fillPubkey(0x01)
	poolA, poolB := fillPubkey(0xA0), fillPubkey(0xB0)
	baseA, quoteA := fillPubkey(0xA1), fillPubkey(0xA2)
	baseB, quoteB := fillPubkey(0xB1), fillPubkey(0xB2)

	fake := &fakeReader{
		programAccounts: map[string][]chain.ProgramAccount{
			mint.String(): {
				candidate(poolA, baseA, quoteA),
				candidate(poolB, baseB, quoteB),
			},
		},
		balances: map[types.Pubkey]uint64{
			baseA: 100, quoteA: 100, // 流动性 10000
			baseB: 1000, quoteB: 1000, // 流动性 1000000
		},
	}

	best, err := NewLocator(fake).FindBestPool(context.Background(), mint)
	assert.NoError(t, err)
	assert.Equal(t, poolB, best)
}

func TestFindBestPool_TieKeepsFirst(t *testing.T) {
	mint := fillPubkey(0x01)
	poolA, poolB := fillPubkey(0xA0), fillPubkey(0xB0)
	baseA, quoteA := fillPubkey(0xA1), fillPubkey(0xA2)
	baseB, quoteB := fillPubkey(0xB1), fillPubkey(0xB2)

	fake := &fakeReader{
		programAccounts: map[string][]chain.ProgramAccount{
			mint.String(): {
				candidate(poolA, baseA, quoteA),
				candidate(poolB, baseB, quoteB),
			},
		},
		// 两个候选评分相同，应保留先枚举到的 poolA
		balances: map[types.Pubkey]uint64{
			baseA: 500, quoteA: 500,
			baseB: 500, quoteB: 500,
		},
	}

	best, err := NewLocator(fake).FindBestPool(context.Background(), mint)
	assert.NoError(t, err)
	assert.Equal(t, poolA, best)
}

func TestFindBestPool_SkipsFailedCandidate(t *testing.T) {
	mint := fillPubkey(0x01)
	poolA, poolB := fillPubkey(0xA0), fillPubkey(0xB0)
	baseA, quoteA := fillPubkey(0xA1), fillPubkey(0xA2)
	baseB, quoteB := fillPubkey(0xB1), fillPubkey(0xB2)

	fake := &fakeReader{
		programAccounts: map[string][]chain.ProgramAccount{
			mint.String(): {
				candidate(poolA, baseA, quoteA),
				candidate(poolB, baseB, quoteB),
			},
		},
		balances: map[types.Pubkey]uint64{
			baseA: 10, quoteA: 10,
			baseB: 9999, quoteB: 9999,
		},
		// 流动性更高的 poolB 查询失败，应退回 poolA 而不是整体失败
		balanceErrs: map[types.Pubkey]error{
			baseB: errors.New("rpc timeout"),
		},
	}

	best, err := NewLocator(fake).FindBestPool(context.Background(), mint)
	assert.NoError(t, err)
	assert.Equal(t, poolA, best)
}

func TestFindBestPool_SearchesBothOrders(t *testing.T) {
	mint := fillPubkey(0x01)
	pool := fillPubkey(0xC0)
	base, quote := fillPubkey(0xC1), fillPubkey(0xC2)

	// 只有反序配对（WSOL 为 base）命中
	fake := &fakeReader{
		programAccounts: map[string][]chain.ProgramAccount{
			consts.WSOLMintStr: {candidate(pool, base, quote)},
		},
		balances: map[types.Pubkey]uint64{
			base: 100, quote: 100,
		},
	}

	best, err := NewLocator(fake).FindBestPool(context.Background(), mint)
	assert.NoError(t, err)
	assert.Equal(t, pool, best)
}

func TestFindBestPool_FilterSetErrorNotFatal(t *testing.T) {
	mint := fillPubkey(0x01)
	pool := fillPubkey(0xC0)
	base, quote := fillPubkey(0xC1), fillPubkey(0xC2)

	fake := &fakeReader{
		programErr: map[string]error{
			mint.String(): errors.New("rpc unavailable"),
		},
		programAccounts: map[string][]chain.ProgramAccount{
			consts.WSOLMintStr: {candidate(pool, base, quote)},
		},
		balances: map[types.Pubkey]uint64{
			base: 100, quote: 100,
		},
	}

	best, err := NewLocator(fake).FindBestPool(context.Background(), mint)
	assert.NoError(t, err)
	assert.Equal(t, pool, best)
}

func TestFindBestPool_NotFound(t *testing.T) {
	fake := &fakeReader{}
	_, err := NewLocator(fake).FindBestPool(context.Background(), fillPubkey(0x01))
	assert.ErrorIs(t, err, ErrNoPoolFound)
}

func TestFindBestPool_ZeroLiquidityNotSelected(t *testing.T) {
	mint := fillPubkey(0x01)
	pool := fillPubkey(0xC0)
	base, quote := fillPubkey(0xC1), fillPubkey(0xC2)

	// 空池（任一侧余额为零）不算有效候选
	fake := &fakeReader{
		programAccounts: map[string][]chain.ProgramAccount{
			mint.String(): {candidate(pool, base, quote)},
		},
		balances: map[types.Pubkey]uint64{
			base: 0, quote: 100,
		},
	}

	_, err := NewLocator(fake).FindBestPool(context.Background(), mint)
	assert.ErrorIs(t, err, ErrNoPoolFound)
}

func TestFetchPoolKeys(t *testing.T) {
	pool := fillPubkey(0xD0)
	state := PoolState{
		Creator:               fillPubkey(0x11),
		BaseMint:              fillPubkey(0x22),
		QuoteMint:             fillPubkey(0x33),
		PoolBaseTokenAccount:  fillPubkey(0x55),
		PoolQuoteTokenAccount: fillPubkey(0x66),
		CoinCreator:           fillPubkey(0x77),
	}
	fake := &fakeReader{
		accountData: map[types.Pubkey][]byte{pool: buildPoolAccount(state)},
	}

	keys, err := FetchPoolKeys(context.Background(), fake, pool)
	assert.NoError(t, err)
	assert.Equal(t, &PoolKeys{
		Amm:                   pool,
		BaseMint:              state.BaseMint,
		QuoteMint:             state.QuoteMint,
		PoolBaseTokenAccount:  state.PoolBaseTokenAccount,
		PoolQuoteTokenAccount: state.PoolQuoteTokenAccount,
		Creator:               state.CoinCreator, // 取 coin_creator 而不是池子 creator
	}, keys)
}

func TestFetchPoolKeys_FetchOrDecodeFails(t *testing.T) {
	// 账户缺失
	_, err := FetchPoolKeys(context.Background(), &fakeReader{}, fillPubkey(0xD0))
	assert.Error(t, err)

	// 数据过短
	pool := fillPubkey(0xD1)
	fake := &fakeReader{
		accountData: map[types.Pubkey][]byte{pool: make([]byte, 100)},
	}
	_, err = FetchPoolKeys(context.Background(), fake, pool)
	assert.Error(t, err)
}
