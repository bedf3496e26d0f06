package consts

import "pumpswap-marketcap/pkg/types"

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	//  Programs
	SystemProgramStr = "11111111111111111111111111111111"
	TokenProgramStr  = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

	// DEX: Pump.fun AMM（PumpSwap）
	PumpSwapAMMProgramStr = "pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA"

	// USD 计价基础报价币（具有稳定市场价格）
	WSOLMintStr = "So11111111111111111111111111111111111111112"
)

const (
	// WSOLDecimals WSOL 的标准精度
	WSOLDecimals = 9
)

var (
	// Programs
	SystemProgram = types.PubkeyFromBase58(SystemProgramStr)
	TokenProgram  = types.PubkeyFromBase58(TokenProgramStr)

	// DEX Program
	PumpSwapAMMProgram = types.PubkeyFromBase58(PumpSwapAMMProgramStr)

	// 报价币
	WSOLMint = types.PubkeyFromBase58(WSOLMintStr)
)
