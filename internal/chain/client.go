package chain

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"time"

	"pumpswap-marketcap/pkg/types"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
)

// DefaultEndpoint 默认主网公共 RPC 节点
const DefaultEndpoint = rpc.MainnetRPCEndpoint

const defaultTimeout = 10 * time.Second

// TokenBalance token 账户余额 / mint 供应量（最小单位整数 + 精度）
type TokenBalance struct {
	Amount   uint64
	Decimals uint8
}

// UIAmount 折算为 UI 数量（按精度缩放）
func (b TokenBalance) UIAmount() float64 {
	return float64(b.Amount) / math.Pow10(int(b.Decimals))
}

// MemcmpFilter getProgramAccounts 的字节前缀过滤条件，Bytes 为 base58 编码
type MemcmpFilter struct {
	Offset uint64
	Bytes  string
}

// ProgramAccount getProgramAccounts 返回的单个账户
type ProgramAccount struct {
	Pubkey types.Pubkey
	Data   []byte
}

// Reader 抽象本程序用到的链上只读操作，便于在测试中替换真实 RPC
type Reader interface {
	// TokenSupply 查询 mint 的总供应量
	TokenSupply(ctx context.Context, mint types.Pubkey) (TokenBalance, error)
	// TokenAccountBalance 查询单个 token 账户余额
	TokenAccountBalance(ctx context.Context, account types.Pubkey) (TokenBalance, error)
	// AccountData 查询账户原始字节（processed commitment）
	AccountData(ctx context.Context, account types.Pubkey) ([]byte, error)
	// MultipleAccountData 批量查询账户原始字节，返回顺序与入参一致
	MultipleAccountData(ctx context.Context, accounts []types.Pubkey) ([][]byte, error)
	// ProgramAccounts 按 memcmp 过滤条件扫描指定 program 名下账户
	ProgramAccounts(ctx context.Context, program types.Pubkey, filters []MemcmpFilter) ([]ProgramAccount, error)
}

// Client 基于 blocto solana-go-sdk 的 Reader 实现，每次调用使用独立超时上下文
type Client struct {
	rpc     *client.Client
	timeout time.Duration
}

var _ Reader = (*Client)(nil)

func NewClient(endpoint string, timeoutS int) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := defaultTimeout
	if timeoutS > 0 {
		timeout = time.Duration(timeoutS) * time.Second
	}
	return &Client{
		rpc:     client.NewClient(endpoint),
		timeout: timeout,
	}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) TokenSupply(ctx context.Context, mint types.Pubkey) (TokenBalance, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	supply, err := c.rpc.GetTokenSupply(ctx, mint.String())
	if err != nil {
		return TokenBalance{}, fmt.Errorf("getTokenSupply failed: mint=%s: %w", mint, err)
	}
	return TokenBalance{Amount: supply.Amount, Decimals: supply.Decimals}, nil
}

func (c *Client) TokenAccountBalance(ctx context.Context, account types.Pubkey) (TokenBalance, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	balance, err := c.rpc.GetTokenAccountBalance(ctx, account.String())
	if err != nil {
		return TokenBalance{}, fmt.Errorf("getTokenAccountBalance failed: account=%s: %w", account, err)
	}
	return TokenBalance{Amount: balance.Amount, Decimals: balance.Decimals}, nil
}

func (c *Client) AccountData(ctx context.Context, account types.Pubkey) ([]byte, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	info, err := c.rpc.GetAccountInfoWithConfig(ctx, account.String(), client.GetAccountInfoConfig{
		Commitment: rpc.CommitmentProcessed,
	})
	if err != nil {
		return nil, fmt.Errorf("getAccountInfo failed: account=%s: %w", account, err)
	}
	if len(info.Data) == 0 {
		return nil, fmt.Errorf("account not found or empty: account=%s", account)
	}
	return info.Data, nil
}

func (c *Client) MultipleAccountData(ctx context.Context, accounts []types.Pubkey) ([][]byte, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	addrs := make([]string, 0, len(accounts))
	for _, a := range accounts {
		addrs = append(addrs, a.String())
	}

	infos, err := c.rpc.GetMultipleAccounts(ctx, addrs)
	if err != nil {
		return nil, fmt.Errorf("getMultipleAccounts failed: %w", err)
	}
	if len(infos) != len(accounts) {
		return nil, fmt.Errorf("getMultipleAccounts: 返回账户数与请求不一致: got=%d want=%d", len(infos), len(accounts))
	}

	result := make([][]byte, len(infos))
	for i, info := range infos {
		result[i] = info.Data
	}
	return result, nil
}

func (c *Client) ProgramAccounts(ctx context.Context, program types.Pubkey, filters []MemcmpFilter) ([]ProgramAccount, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	cfgFilters := make([]rpc.GetProgramAccountsConfigFilter, 0, len(filters))
	for _, f := range filters {
		cfgFilters = append(cfgFilters, rpc.GetProgramAccountsConfigFilter{
			MemCmp: &rpc.GetProgramAccountsConfigFilterMemCmp{
				Offset: f.Offset,
				Bytes:  f.Bytes,
			},
		})
	}

	res, err := c.rpc.RpcClient.GetProgramAccountsWithConfig(ctx, program.String(), rpc.GetProgramAccountsConfig{
		Encoding: rpc.AccountEncodingBase64,
		Filters:  cfgFilters,
	})
	if err != nil {
		return nil, fmt.Errorf("getProgramAccounts failed: program=%s: %w", program, err)
	}
	if res.Error != nil {
		return nil, fmt.Errorf("getProgramAccounts rpc error: program=%s: %w", program, res.Error)
	}

	accounts := make([]ProgramAccount, 0, len(res.Result))
	for _, acct := range res.Result {
		pubkey, err := types.TryPubkeyFromBase58(acct.Pubkey)
		if err != nil {
			return nil, fmt.Errorf("getProgramAccounts: 非法 pubkey %q: %w", acct.Pubkey, err)
		}
		data, err := decodeAccountData(acct.Account.Data)
		if err != nil {
			return nil, fmt.Errorf("getProgramAccounts: account=%s: %w", pubkey, err)
		}
		accounts = append(accounts, ProgramAccount{Pubkey: pubkey, Data: data})
	}
	return accounts, nil
}

// decodeAccountData 解析 base64 编码下的账户数据字段，形如 ["<base64>", "base64"]
func decodeAccountData(raw any) ([]byte, error) {
	tuple, ok := raw.([]any)
	if !ok || len(tuple) < 1 {
		return nil, fmt.Errorf("unexpected account data shape: %T", raw)
	}
	encoded, ok := tuple[0].(string)
	if !ok {
		return nil, fmt.Errorf("unexpected account data payload: %T", tuple[0])
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("base64 decode failed: %w", err)
	}
	return data, nil
}
