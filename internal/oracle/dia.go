package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pumpswap-marketcap/internal/cache"
	"pumpswap-marketcap/pkg/logger"
)

// DIA 的资产报价接口，用全零地址表示链上原生资产（SOL）
const DefaultQuotationURL = "https://api.diadata.org/v1/assetQuotation/Solana/0x0000000000000000000000000000000000000000"

const defaultTimeout = 10 * time.Second

// ErrPriceMissing 响应体合法 JSON 但缺少 Price 字段
var ErrPriceMissing = errors.New("oracle response missing Price field")

// Client DIA 报价客户端。报价失败对整次运行是致命的，不重试、无备用源。
type Client struct {
	url        string
	httpClient *http.Client
	priceCache *cache.PriceCache // 可为 nil
}

func NewClient(url string, timeoutS int, priceCache *cache.PriceCache) *Client {
	if url == "" {
		url = DefaultQuotationURL
	}
	timeout := defaultTimeout
	if timeoutS > 0 {
		timeout = time.Duration(timeoutS) * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		priceCache: priceCache,
	}
}

// quotation DIA assetQuotation 响应中本程序关心的字段
type quotation struct {
	Price *float64 `json:"Price"`
}

// NativeUSDPrice 获取原生资产（SOL）的 USD 价格。
// 配置了缓存时优先读缓存，未命中再走 HTTP 并回填。
func (c *Client) NativeUSDPrice(ctx context.Context) (float64, error) {
	if c.priceCache != nil {
		if price, ok := c.priceCache.GetNativeUSD(ctx); ok {
			logger.Debugf("[Oracle] 命中缓存报价: %f", price)
			return price, nil
		}
	}

	price, err := c.fetch(ctx)
	if err != nil {
		return 0, err
	}

	if c.priceCache != nil {
		c.priceCache.PutNativeUSD(ctx, price)
	}
	return price, nil
}

func (c *Client) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("oracle request build failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 读一小段响应体帮助定位，忽略读取错误
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("oracle bad status: %d, body=%q", resp.StatusCode, body)
	}

	var q quotation
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return 0, fmt.Errorf("oracle response decode failed: %w", err)
	}
	if q.Price == nil {
		return 0, ErrPriceMissing
	}
	return *q.Price, nil
}
