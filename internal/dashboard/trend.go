package dashboard

// Trend classifications.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

const (
	// trendSampleSize is how many of the newest values feed the trend.
	trendSampleSize = 10
	// trendRecentSize is how many of those count as "recent".
	trendRecentSize = 3
	// trendChangePct is the percentage change beyond which a trend is
	// reported. The comparison is exclusive: exactly ±5% is stable.
	trendChangePct = 5.0
)

// ComputeTrend classifies the short-term direction of a chronologically
// ordered value series. The mean of the most recent values (up to 3) is
// compared against the mean of the earlier values within the last 10
// samples. Fewer than two data points carry no signal and report stable.
func ComputeTrend(values []float64) string {
	if len(values) < 2 {
		return TrendStable
	}
	if len(values) > trendSampleSize {
		values = values[len(values)-trendSampleSize:]
	}

	split := len(values) - trendRecentSize
	if split < 1 {
		split = 1
	}
	earlier := values[:split]
	recent := values[split:]

	earlierMean := mean(earlier)
	if earlierMean == 0 {
		return TrendStable
	}
	changePct := (mean(recent) - earlierMean) / earlierMean * 100

	switch {
	case changePct > trendChangePct:
		return TrendUp
	case changePct < -trendChangePct:
		return TrendDown
	default:
		return TrendStable
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
