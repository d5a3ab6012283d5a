package webhook

import "math"

// RatePerMinute is the fixed billing rate in dollars per minute. It is a
// constant of the service, not per-call configuration.
const RatePerMinute = 0.99

// CallCost converts a raw duration in seconds to billed minutes and cost.
// Minutes keep four decimals, cost rounds to cents.
func CallCost(durationSeconds float64) (minutes, cost float64) {
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	minutes = math.Round(durationSeconds/60*10000) / 10000
	cost = math.Round(minutes*RatePerMinute*100) / 100
	return minutes, cost
}
