package auction

import (
	"fmt"

	"github.com/x-xyz/auctionapi/domain"
)

// ViolationReason names the rule a rejected bid broke
type ViolationReason string

const (
	ReasonBelowMinimum       ViolationReason = "below_minimum"
	ReasonRosterFull         ViolationReason = "roster_full"
	ReasonInsufficientBudget ViolationReason = "insufficient_budget"
	ReasonTeamNotAllowed     ViolationReason = "team_not_allowed"
	ReasonBidLimitReached    ViolationReason = "bid_limit_reached"
)

// RuleViolation is returned for a rejected bid. errors.Is(err, domain.ErrRuleViolation) holds.
type RuleViolation struct {
	Reason ViolationReason `json:"reason"`
	// Required is the minimum amount for ReasonBelowMinimum and the limit for ReasonBidLimitReached
	Required int64 `json:"required,omitempty"`
}

func (e *RuleViolation) Error() string {
	switch e.Reason {
	case ReasonBelowMinimum:
		return fmt.Sprintf("Bid must be >= %d", e.Required)
	case ReasonRosterFull:
		return "Team has no roster slots left"
	case ReasonInsufficientBudget:
		return "Team does not have enough budget for this bid"
	case ReasonTeamNotAllowed:
		return "Team is not allowed to bid in this auction"
	case ReasonBidLimitReached:
		return fmt.Sprintf("Team reached the limit of %d bids for this player", e.Required)
	}
	return string(e.Reason)
}

func (e *RuleViolation) Is(target error) bool {
	return target == domain.ErrRuleViolation
}

// ValidateConfig normalizes raw into a Config, applying defaults to missing or
// out-of-range values. It fails when a reserve or buy-now price is below minBid.
func ValidateConfig(raw RawConfig) (Config, error) {
	cfg := Config{
		MinBid:          DefaultMinBid,
		Increment:       DefaultIncrement,
		DurationSeconds: DefaultDurationSeconds,
	}

	if raw.MinBid != nil && *raw.MinBid >= 0 {
		cfg.MinBid = *raw.MinBid
	}
	if raw.Increment != nil && *raw.Increment > 0 {
		cfg.Increment = *raw.Increment
	}
	if raw.DurationSeconds != nil && *raw.DurationSeconds > 0 {
		cfg.DurationSeconds = *raw.DurationSeconds
	}
	if raw.AntiSnipingSeconds != nil && *raw.AntiSnipingSeconds >= 0 {
		cfg.AntiSnipingSeconds = *raw.AntiSnipingSeconds
	}
	if raw.AutoExtendSeconds != nil && *raw.AutoExtendSeconds >= 0 {
		cfg.AutoExtendSeconds = *raw.AutoExtendSeconds
	}
	if raw.ReservePrice != nil {
		v := *raw.ReservePrice
		cfg.ReservePrice = &v
	}
	if raw.BuyNowPrice != nil && *raw.BuyNowPrice > 0 {
		v := *raw.BuyNowPrice
		cfg.BuyNowPrice = &v
	}
	if raw.MaxBidsPerPlayer != nil && *raw.MaxBidsPerPlayer > 0 {
		v := *raw.MaxBidsPerPlayer
		cfg.MaxBidsPerPlayer = &v
	}
	for _, t := range raw.AllowedTeams {
		if t != "" {
			cfg.AllowedTeams = append(cfg.AllowedTeams, t)
		}
	}

	if cfg.ReservePrice != nil && *cfg.ReservePrice < cfg.MinBid {
		return Config{}, fmt.Errorf("%w: reservePrice cannot be less than minBid", domain.ErrBadParamInput)
	}
	if cfg.BuyNowPrice != nil && *cfg.BuyNowPrice < cfg.MinBid {
		return Config{}, fmt.Errorf("%w: buyNowPrice cannot be less than minBid", domain.ErrBadParamInput)
	}

	if cfg.AntiSnipingSeconds > 0 && cfg.AutoExtendSeconds <= 0 {
		cfg.AutoExtendSeconds = cfg.AntiSnipingSeconds
	}

	return cfg, nil
}

// RequiredMinimum is the smallest acceptable next bid given the standing highest amount
func RequiredMinimum(cfg Config, highest int64) int64 {
	if highest > 0 {
		return highest + cfg.Increment
	}
	return cfg.MinBid
}

// BidCandidate is a bid under evaluation
type BidCandidate struct {
	TeamID string
	Amount int64
	// TeamBids is how many bids TeamID already placed on the active player this round
	TeamBids int
}

// Verdict is the outcome of an accepted bid
type Verdict struct {
	// BuyNow is set when the amount reaches the buy-now price and the round ends immediately
	BuyNow bool
}

// EvaluateBid checks a candidate bid without side effects. Checks run in a fixed order:
// minimum, roster, budget, then allowed teams and per-player bid limit.
func EvaluateBid(cfg Config, ledger TeamLedger, highest int64, cand BidCandidate) (Verdict, error) {
	if required := RequiredMinimum(cfg, highest); cand.Amount < required {
		return Verdict{}, &RuleViolation{Reason: ReasonBelowMinimum, Required: required}
	}
	if len(ledger.Roster) >= RosterSize {
		return Verdict{}, &RuleViolation{Reason: ReasonRosterFull}
	}
	if ledger.Budget < cand.Amount {
		return Verdict{}, &RuleViolation{Reason: ReasonInsufficientBudget}
	}
	if !cfg.allows(cand.TeamID) {
		return Verdict{}, &RuleViolation{Reason: ReasonTeamNotAllowed}
	}
	if cfg.MaxBidsPerPlayer != nil && cand.TeamBids >= *cfg.MaxBidsPerPlayer {
		return Verdict{}, &RuleViolation{Reason: ReasonBidLimitReached, Required: int64(*cfg.MaxBidsPerPlayer)}
	}

	return Verdict{
		BuyNow: cfg.BuyNowPrice != nil && cand.Amount >= *cfg.BuyNowPrice,
	}, nil
}
