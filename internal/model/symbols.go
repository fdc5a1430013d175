package model

// NIFTY50Symbols is the fixed universe of tradable symbols (NSE tickers).
// Read-only; never mutated at runtime.
var NIFTY50Symbols = []string{
	"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "HINDUNILVR.NS",
	"ICICIBANK.NS", "BHARTIARTL.NS", "SBIN.NS", "BAJFINANCE.NS", "LICI.NS",
	"ITC.NS", "SUNPHARMA.NS", "HCLTECH.NS", "AXISBANK.NS", "KOTAKBANK.NS",
	"LT.NS", "ASIANPAINT.NS", "MARUTI.NS", "TITAN.NS", "ULTRACEMCO.NS",
	"WIPRO.NS", "NESTLEIND.NS", "ONGC.NS", "NTPC.NS", "POWERGRID.NS",
	"M&M.NS", "TECHM.NS", "ADANIENT.NS", "JSWSTEEL.NS", "TATAMOTORS.NS",
	"ADANIPORTS.NS", "TATASTEEL.NS", "DIVISLAB.NS", "BAJAJFINSV.NS",
	"HINDALCO.NS", "GRASIM.NS", "BRITANNIA.NS", "SBILIFE.NS", "HEROMOTOCO.NS",
	"APOLLOHOSP.NS", "DRREDDY.NS", "COALINDIA.NS", "CIPLA.NS", "EICHERMOT.NS",
	"BPCL.NS", "MARICO.NS", "INDUSINDBK.NS", "ADANIPOWER.NS", "GODREJCP.NS",
}

// IsKnownSymbol reports whether the symbol belongs to the fixed universe.
func IsKnownSymbol(symbol string) bool {
	for _, s := range NIFTY50Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}
