package statequery

import (
	"context"
	"encoding/json"

	"github.com/ocx/ogmios-go/wire"
)

type queryArgs struct {
	Query any `json:"query"`
}

// doQuery sends a Query request named queryName with the given raw
// query value (a bare string for parameterless queries, or a
// single-key object for parameterized ones), then classifies and
// decodes the result into T.
func doQuery[T any](ctx context.Context, c *Client, queryName string, queryValue any) (T, error) {
	var zero T

	c.mu.Lock()
	acquired := c.state == Acquired
	c.mu.Unlock()
	if !acquired {
		return zero, ErrNotAcquired
	}

	resp, err := c.corr.Send(ctx, wire.MethodQuery, queryArgs{Query: queryValue}, nil)
	if err != nil {
		return zero, err
	}

	kind, em, body := wire.ClassifyResult(resp.Result)
	switch kind {
	case wire.ResultUnavailable:
		return zero, &QueryUnavailableError{Query: queryName}
	case wire.ResultEraMismatch:
		return zero, &EraMismatchError{Query: queryName, QueryEra: em.QueryEra, LedgerEra: em.LedgerEra}
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, &UnknownResultError{Query: queryName, Raw: body}
	}
	return out, nil
}

// BlockHeight returns the tip's block number, or the origin sentinel
// if the chain has no blocks yet.
func (c *Client) BlockHeight(ctx context.Context) (wire.BlockNoOrOrigin, error) {
	return doQuery[wire.BlockNoOrOrigin](ctx, c, "blockHeight", "blockHeight")
}

// ChainTip returns the bridge's current chain tip.
func (c *Client) ChainTip(ctx context.Context) (wire.PointOrOrigin, error) {
	return doQuery[wire.PointOrOrigin](ctx, c, "chainTip", "chainTip")
}

// CurrentEpoch returns the ledger's current epoch number.
func (c *Client) CurrentEpoch(ctx context.Context) (uint64, error) {
	return doQuery[uint64](ctx, c, "currentEpoch", "currentEpoch")
}

// CurrentProtocolParameters returns the currently active protocol
// parameters. The result's fields vary by era, so callers unmarshal
// the returned raw payload into the era-specific type they expect.
func (c *Client) CurrentProtocolParameters(ctx context.Context) (json.RawMessage, error) {
	return doQuery[json.RawMessage](ctx, c, "currentProtocolParameters", "currentProtocolParameters")
}

// DelegationsAndRewards returns, for each of the given stake key
// hashes, its current delegation target and accumulated rewards. An
// empty result map is a valid success, not an absence of data.
func (c *Client) DelegationsAndRewards(ctx context.Context, stakeKeyHashes []string) (wire.DelegationsAndRewardsByAccounts, error) {
	return doQuery[wire.DelegationsAndRewardsByAccounts](ctx, c, "delegationsAndRewards", map[string]any{"delegationsAndRewards": stakeKeyHashes})
}

// EraStart returns the bound marking the start of the current era.
func (c *Client) EraStart(ctx context.Context) (wire.Bound, error) {
	return doQuery[wire.Bound](ctx, c, "eraStart", "eraStart")
}

// EraSummaries returns the slotting parameters of every era the
// bridge knows about.
func (c *Client) EraSummaries(ctx context.Context) ([]wire.EraSummary, error) {
	return doQuery[[]wire.EraSummary](ctx, c, "eraSummaries", "eraSummaries")
}

// Era identifies one of the genesis-bearing eras accepted by
// GenesisConfig.
type Era string

const (
	EraByron   Era = "byron"
	EraShelley Era = "shelley"
	EraAlonzo  Era = "alonzo"
)

// GenesisConfig returns the genesis configuration for era. The
// result's shape is era-specific, so callers unmarshal the returned
// raw payload into the era-specific genesis type they expect.
func (c *Client) GenesisConfig(ctx context.Context, era Era) (json.RawMessage, error) {
	return doQuery[json.RawMessage](ctx, c, "genesisConfig", map[string]any{"genesisConfig": string(era)})
}

// LedgerTip returns the ledger's current tip, which may lag the
// bridge's chain tip while catching up.
func (c *Client) LedgerTip(ctx context.Context) (wire.PointOrOrigin, error) {
	return doQuery[wire.PointOrOrigin](ctx, c, "ledgerTip", "ledgerTip")
}

// NonMyopicMemberRewards returns, for each of the given stake
// credentials or lovelace amounts, the projected non-myopic reward
// under each considered pool.
func (c *Client) NonMyopicMemberRewards(ctx context.Context, inputs []any) (wire.NonMyopicMemberRewards, error) {
	return doQuery[wire.NonMyopicMemberRewards](ctx, c, "nonMyopicMemberRewards", map[string]any{"nonMyopicMemberRewards": inputs})
}

// PoolIds returns every stake pool id currently registered.
func (c *Client) PoolIds(ctx context.Context) ([]string, error) {
	return doQuery[[]string](ctx, c, "poolIds", "poolIds")
}

// PoolParameters returns the registration parameters of each of the
// given pool ids.
func (c *Client) PoolParameters(ctx context.Context, poolIDs []string) (map[string]wire.PoolParameters, error) {
	return doQuery[map[string]wire.PoolParameters](ctx, c, "poolParameters", map[string]any{"poolParameters": poolIDs})
}

// PoolsRanking returns every pool's desirability ranking.
func (c *Client) PoolsRanking(ctx context.Context) (wire.PoolsRanking, error) {
	return doQuery[wire.PoolsRanking](ctx, c, "poolsRanking", "poolsRanking")
}

// ProposedProtocolParameters returns the protocol parameter update
// currently proposed on-chain, if any. The result's fields vary by
// era; callers unmarshal further as needed.
func (c *Client) ProposedProtocolParameters(ctx context.Context) (json.RawMessage, error) {
	return doQuery[json.RawMessage](ctx, c, "proposedProtocolParameters", "proposedProtocolParameters")
}

// RewardsProvenance returns the detailed reward-calculation breakdown
// for the most recently completed epoch.
func (c *Client) RewardsProvenance(ctx context.Context) (wire.RewardsProvenance, error) {
	return doQuery[wire.RewardsProvenance](ctx, c, "rewardsProvenance", "rewardsProvenance")
}

// RewardsProvenanceNew returns the post-Alonzo reward-calculation
// breakdown for the most recently completed epoch.
func (c *Client) RewardsProvenanceNew(ctx context.Context) (wire.RewardsProvenanceNew, error) {
	return doQuery[wire.RewardsProvenanceNew](ctx, c, "rewardsProvenance'", "rewardsProvenance'")
}

// StakeDistribution returns each pool's current share of the active
// stake.
func (c *Client) StakeDistribution(ctx context.Context) (wire.PoolDistribution, error) {
	return doQuery[wire.PoolDistribution](ctx, c, "stakeDistribution", "stakeDistribution")
}

// SystemStart returns the network's genesis timestamp.
func (c *Client) SystemStart(ctx context.Context) (wire.UtcTime, error) {
	return doQuery[wire.UtcTime](ctx, c, "systemStart", "systemStart")
}

// Utxo returns the unspent outputs matching filters (addresses or
// transaction inputs). An empty filters slice queries the entire
// UTxO set.
func (c *Client) Utxo(ctx context.Context, filters []string) (wire.Utxo, error) {
	if len(filters) == 0 {
		return doQuery[wire.Utxo](ctx, c, "utxo", "utxo")
	}
	return doQuery[wire.Utxo](ctx, c, "utxo", map[string]any{"utxo": filters})
}
