package wire

import (
	"encoding/json"
	"fmt"
	"time"
)

// BlockNoOrOrigin is the tagged sum of a block number and Origin,
// returned by the blockHeight query.
type BlockNoOrOrigin struct {
	IsOrigin bool
	BlockNo  uint64
}

func (b BlockNoOrOrigin) MarshalJSON() ([]byte, error) {
	if b.IsOrigin {
		return json.Marshal("origin")
	}
	return json.Marshal(b.BlockNo)
}

func (b *BlockNoOrOrigin) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "origin" {
			return &MalformedError{Raw: data, Reason: fmt.Sprintf("unexpected blockHeight string %q", s)}
		}
		*b = BlockNoOrOrigin{IsOrigin: true}
		return nil
	}
	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid blockHeight: %v", err)}
	}
	*b = BlockNoOrOrigin{BlockNo: n}
	return nil
}

// UtcTime wraps an RFC3339 timestamp as returned by systemStart and the
// genesis configs' systemStart field.
type UtcTime struct {
	time.Time
}

func (t UtcTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}

func (t *UtcTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid systemStart timestamp: %v", err)}
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid systemStart timestamp: %v", err)}
	}
	t.Time = parsed
	return nil
}

// Bound identifies the start or end of an era: the wall-clock time,
// slot, and epoch at which the transition occurs.
type Bound struct {
	Time  UtcTime `json:"time"`
	Slot  uint64  `json:"slot"`
	Epoch uint64  `json:"epoch"`
}

// EraSummaryParameters carries the slotting parameters in effect for
// one era.
type EraSummaryParameters struct {
	EpochLength uint64  `json:"epochLength"`
	SlotLength  float64 `json:"slotLength"`
	SafeZone    *uint64 `json:"safeZone,omitempty"`
}

// EraSummary describes one era's slotting window, as returned by
// eraSummaries. End is nil for the currently active era.
type EraSummary struct {
	Start      Bound                `json:"start"`
	End        *Bound               `json:"end"`
	Parameters EraSummaryParameters `json:"parameters"`
}

// Relay is a stake pool's registered network relay: either an
// IP-addressed endpoint or a hostname-addressed one.
type Relay struct {
	IPv4     *string `json:"ipv4,omitempty"`
	IPv6     *string `json:"ipv6,omitempty"`
	Hostname *string `json:"hostname,omitempty"`
	Port     *uint16 `json:"port,omitempty"`
}

// PoolMetadata references the off-chain JSON describing a pool.
type PoolMetadata struct {
	Hash string `json:"hash"`
	URL  string `json:"url"`
}

// PoolParameters is a stake pool's on-chain registration certificate
// fields, as returned by poolParameters and embedded within
// RewardsProvenance/RewardsProvenanceNew's per-pool entries.
type PoolParameters struct {
	ID            string         `json:"id,omitempty"`
	VRF           string         `json:"vrf,omitempty"`
	Pledge        Lovelace       `json:"pledge"`
	Cost          Lovelace       `json:"cost"`
	Margin        Ratio          `json:"margin"`
	RewardAccount string         `json:"rewardAccount,omitempty"`
	Owners        []string       `json:"owners,omitempty"`
	Relays        []Relay        `json:"relays,omitempty"`
	Metadata      *PoolMetadata  `json:"metadata,omitempty"`
}

// Utxo is the set of unspent outputs returned by the utxo query,
// keyed by nothing — the bridge returns a flat list of (TxIn, TxOut)
// pairs.
type UtxoEntry struct {
	TxIn
	TxOut
}

type Utxo []UtxoEntry

// DelegationsAndRewards is one stake key's current delegation target
// and accumulated rewards.
type DelegationsAndRewards struct {
	Delegate string   `json:"delegate"`
	Rewards  Lovelace `json:"rewards"`
}

// DelegationsAndRewardsByAccounts maps stake key hash to its
// delegation and rewards, as returned by delegationsAndRewards. An
// empty map is a valid result, not an absence of one.
type DelegationsAndRewardsByAccounts map[string]DelegationsAndRewards

// NonMyopicMemberRewards maps a queried stake credential to its
// projected non-myopic rewards under each considered pool.
type NonMyopicMemberRewards map[string]map[string]float64

// PoolRank is one pool's desirability ranking, as returned by
// poolsRanking.
type PoolRank struct {
	Score            float64 `json:"score"`
	EstimatedHitRate float64 `json:"estimatedHitRate"`
}

// PoolsRanking maps pool id to its rank.
type PoolsRanking map[string]PoolRank

// PoolStakeDistribution is one pool's share of the active stake
// together with its VRF key, as returned by stakeDistribution.
type PoolStakeDistribution struct {
	Stake Ratio  `json:"stake"`
	VRF   string `json:"vrf"`
}

// PoolDistribution maps pool id to its stake distribution entry.
type PoolDistribution map[string]PoolStakeDistribution

// IndividualPoolRewardsProvenance is one pool's contribution to a
// rewardsProvenance result.
type IndividualPoolRewardsProvenance struct {
	TotalMintedBlocks   uint64         `json:"totalMintedBlocks"`
	TotalStakeShare     Ratio          `json:"totalStakeShare"`
	ActiveStakeShare    Ratio          `json:"activeStakeShare"`
	OwnerStake          Lovelace       `json:"ownerStake"`
	Parameters          PoolParameters `json:"parameters"`
	PledgeRatio         Ratio          `json:"pledgeRatio"`
	MaxRewards          Lovelace       `json:"maxRewards"`
	ApparentPerformance Ratio          `json:"apparentPerformance"`
	TotalRewards        Lovelace       `json:"totalRewards"`
	LeaderRewards       Lovelace       `json:"leaderRewards"`
}

// RewardsProvenance is the detailed reward-calculation breakdown for
// one epoch, as returned by rewardsProvenance.
type RewardsProvenance struct {
	EpochLength                uint64                                     `json:"epochLength"`
	DecentralizationParameter  Ratio                                      `json:"decentralizationParameter"`
	MaxLovelaceSupply          Lovelace                                   `json:"maxLovelaceSupply"`
	MintedBlocks               map[string]uint64                          `json:"mintedBlocks"`
	TotalMintedBlocks          int64                                      `json:"totalMintedBlocks"`
	TotalExpectedBlocks        int64                                      `json:"totalExpectedBlocks"`
	Incentive                  Lovelace                                   `json:"incentive"`
	RewardsGap                 Lovelace                                   `json:"rewardsGap"`
	AvailableRewards           Lovelace                                   `json:"availableRewards"`
	TotalRewards               Lovelace                                   `json:"totalRewards"`
	TreasuryTax                Lovelace                                   `json:"treasuryTax"`
	ActiveStake                Lovelace                                   `json:"activeStake"`
	Pools                      map[string]IndividualPoolRewardsProvenance `json:"pools"`
}

// RewardInfoPool is one pool's contribution to a rewardsProvenance'
// result, the post-Alonzo reward schema.
type RewardInfoPool struct {
	Stake                  Lovelace       `json:"stake"`
	OwnerStake             Lovelace       `json:"ownerStake"`
	ApproximatePerformance float64        `json:"approximatePerformance"`
	PoolParameters         PoolParameters `json:"poolParameters"`
}

// RewardsProvenanceNew is the post-Alonzo rewards breakdown, as
// returned by rewardsProvenance'.
type RewardsProvenanceNew struct {
	DesiredNumberOfPools uint64                    `json:"desiredNumberOfPools"`
	PoolInfluence        Ratio                     `json:"poolInfluence"`
	TotalRewards         int64                     `json:"totalRewards"`
	ActiveStake          int64                     `json:"activeStake"`
	Pools                map[string]RewardInfoPool `json:"pools"`
}
