package match

const (
	PracticePrize = 100
	LivePrize     = 500

	// MinReward is the least any finisher outside the top ten earns.
	MinReward = 5
)

// Payout returns the coins earned for finishing at rank (1-based). Ranks below
// 1 earn nothing.
func Payout(rank int, live bool) int {
	base := PracticePrize
	if live {
		base = LivePrize
	}
	switch {
	case rank < 1:
		return 0
	case rank == 1:
		return base
	case rank == 2:
		return base * 60 / 100
	case rank == 3:
		return base * 40 / 100
	case rank <= 5:
		return base * 20 / 100
	case rank <= 10:
		return base * 10 / 100
	default:
		return max(MinReward, base*5/100)
	}
}
