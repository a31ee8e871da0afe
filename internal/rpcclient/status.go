package rpcclient

import (
	"context"
	"fmt"
	"strconv"
)

// NodeInfo is the subset of CometBFT node_info the bridge reads.
type NodeInfo struct {
	Network string `json:"network"`
	Version string `json:"version"`
	Moniker string `json:"moniker"`
}

// SyncInfo is the subset of CometBFT sync_info the bridge reads.
type SyncInfo struct {
	LatestBlockHeight string `json:"latest_block_height"`
	CatchingUp        bool   `json:"catching_up"`
}

// Status is the result of the CometBFT "status" method.
type Status struct {
	NodeInfo NodeInfo `json:"node_info"`
	SyncInfo SyncInfo `json:"sync_info"`
}

// Height parses the latest block height.
func (s *Status) Height() (uint64, error) {
	if s.SyncInfo.LatestBlockHeight == "" {
		return 0, nil
	}
	h, err := strconv.ParseUint(s.SyncInfo.LatestBlockHeight, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse block height %q: %w", s.SyncInfo.LatestBlockHeight, err)
	}
	return h, nil
}

// Status queries the node's status.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.Call(ctx, "status", nil, &st); err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	return &st, nil
}
