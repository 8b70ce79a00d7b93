package client

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/dtomapping"
	"github.com/nemtech/catapult-sdk-go/packages/jsonmodels"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

const (
	routeNodeInfo          = "/node/info"
	routeNetworkProperties = "/network/properties"
)

// NodeInfo gets the info of the node.
func (c *Client) NodeInfo(ctx context.Context) (*jsonmodels.NodeInfoResponse, error) {
	res := &jsonmodels.NodeInfoResponse{}
	if err := c.do(ctx, http.MethodGet, routeNodeInfo, nil, res); err != nil {
		return nil, err
	}

	return res, nil
}

// NetworkProperties gets the network configuration of the node.
func (c *Client) NetworkProperties(ctx context.Context) (*jsonmodels.NetworkPropertiesResponse, error) {
	res := &jsonmodels.NetworkPropertiesResponse{}
	if err := c.do(ctx, http.MethodGet, routeNetworkProperties, nil, res); err != nil {
		return nil, err
	}

	return res, nil
}

// NetworkType returns the network of the node. It is only requested once.
func (c *Client) NetworkType(ctx context.Context) (catapult.NetworkType, error) {
	if err := c.loadNetwork(ctx); err != nil {
		return 0, err
	}

	return c.networkType, nil
}

// GenerationHash returns the generation hash seed of the network. It is only requested once.
func (c *Client) GenerationHash(ctx context.Context) (string, error) {
	if err := c.loadNetwork(ctx); err != nil {
		return "", err
	}

	return c.generationHash, nil
}

// EpochAdjustment returns the offset of the network epoch to the unix epoch. It is only requested once.
func (c *Client) EpochAdjustment(ctx context.Context) (time.Duration, error) {
	if err := c.loadNetwork(ctx); err != nil {
		return 0, err
	}

	return c.epochAdjustment, nil
}

// NewDeadline returns the Deadline that lies the given lifetime after now on the network of the node.
func (c *Client) NewDeadline(ctx context.Context, now time.Time, lifetime time.Duration) (catapult.Deadline, error) {
	epochAdjustment, err := c.EpochAdjustment(ctx)
	if err != nil {
		return 0, err
	}

	return catapult.NewDeadline(now, lifetime, epochAdjustment), nil
}

// loadNetwork fetches the network fields that are not configured. A failed attempt is not retried, unless it failed
// because the context of the caller was cancelled or timed out.
func (c *Client) loadNetwork(ctx context.Context) error {
	c.networkMu.Lock()
	defer c.networkMu.Unlock()

	if c.networkLoaded {
		return c.networkErr
	}

	err := c.fetchNetwork(ctx)
	if err != nil && (ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return err
	}
	c.networkLoaded = true
	c.networkErr = err

	return err
}

func (c *Client) fetchNetwork(ctx context.Context) error {
	if c.config.NetworkType != nil {
		c.networkType = *c.config.NetworkType
	} else {
		nodeInfo, err := c.NodeInfo(ctx)
		if err != nil {
			return errors.Errorf("failed to fetch network type: %w", err)
		}
		if c.networkType, err = catapult.NetworkTypeFromDTO(wire.NetworkTypeDTO(nodeInfo.NetworkIdentifier)); err != nil {
			return errors.Errorf("failed to fetch network type: %w", err)
		}
		if c.config.GenerationHash == "" {
			c.config.GenerationHash = nodeInfo.NetworkGenerationHashSeed
		}
	}

	if c.config.GenerationHash != "" && c.config.EpochAdjustment != nil {
		c.generationHash = c.config.GenerationHash
		c.epochAdjustment = *c.config.EpochAdjustment

		return nil
	}

	properties, err := c.NetworkProperties(ctx)
	if err != nil {
		return errors.Errorf("failed to fetch network properties: %w", err)
	}

	c.generationHash = c.config.GenerationHash
	if c.generationHash == "" {
		c.generationHash = properties.Network.GenerationHashSeed
	}

	if c.config.EpochAdjustment != nil {
		c.epochAdjustment = *c.config.EpochAdjustment
	} else if c.epochAdjustment, err = dtomapping.ParseServerDuration(properties.Network.EpochAdjustment); err != nil {
		return errors.Errorf("failed to parse epoch adjustment: %w", err)
	}

	c.log.Debugw("Loaded network", "networkType", c.networkType, "generationHash", c.generationHash, "epochAdjustment", c.epochAdjustment)

	return nil
}
