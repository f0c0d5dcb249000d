package dtos

// CandlestickPoint is one month of charges: open, high, low, close.
type CandlestickPoint struct {
	X string  `json:"x"`
	O float64 `json:"o"`
	H float64 `json:"h"`
	L float64 `json:"l"`
	C float64 `json:"c"`
}

type CandlestickSeries struct {
	Label string             `json:"label"`
	Data  []CandlestickPoint `json:"data"`
}
