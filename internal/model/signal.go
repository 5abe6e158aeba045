package model

// Signal classifies a single RSI reading.
type Signal string

const (
	SignalBuy     Signal = "Buy"
	SignalSell    Signal = "Sell"
	SignalNeutral Signal = "Neutral"
)

// SignalReading is one timeframe's RSI value with its classification.
type SignalReading struct {
	Timeframe Timeframe `json:"timeframe"`
	RSI       float64   `json:"rsi"`
	Signal    Signal    `json:"signal"`
}

// Advice is the overall recommendation label across all timeframes.
type Advice string

const (
	AdviceStrongBuy  Advice = "Strong Buy"
	AdviceBuy        Advice = "Buy"
	AdviceNeutral    Advice = "Neutral"
	AdviceSell       Advice = "Sell"
	AdviceStrongSell Advice = "Strong Sell"
)

// Recommendation is the weighted multi-timeframe verdict.
type Recommendation struct {
	Advice    Advice  `json:"advice"`
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}
