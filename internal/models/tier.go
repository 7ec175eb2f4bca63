package models

type SubscriptionTier string

const (
	TierFree SubscriptionTier = "FREE"
	TierPro  SubscriptionTier = "PRO"
	TierGold SubscriptionTier = "GOLD"
)

// Daily drop allowance per tier. The Free allowance being the highest is
// carried over as-is from the billing team's table; see DESIGN.md before
// "fixing" it.
var dropLimits = map[SubscriptionTier]int{
	TierFree: 90,
	TierPro:  20,
	TierGold: 50,
}

// Pickup radius in meters per tier. Defined alongside the drop limits but
// not yet consulted by the nearby query path, which uses a fixed radius.
var pickupRadii = map[SubscriptionTier]float64{
	TierFree: 50,
	TierPro:  150,
	TierGold: 300,
}

// ParseTier maps a stored/claimed tier string to a SubscriptionTier,
// falling back to Free for anything unrecognized.
func ParseTier(s string) SubscriptionTier {
	switch SubscriptionTier(s) {
	case TierFree, TierPro, TierGold:
		return SubscriptionTier(s)
	}
	return TierFree
}

// DropLimit returns the daily drop allowance for a tier. Unknown tiers get
// the Free allowance rather than failing the request.
func DropLimit(tier SubscriptionTier) int {
	if limit, ok := dropLimits[tier]; ok {
		return limit
	}
	return dropLimits[TierFree]
}

// PickupRadius returns the configured pickup radius for a tier, with the
// same Free fallback as DropLimit.
func PickupRadius(tier SubscriptionTier) float64 {
	if r, ok := pickupRadii[tier]; ok {
		return r
	}
	return pickupRadii[TierFree]
}
