package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akarpov/coopledger/pkg/clients"
	"go.uber.org/zap"
)

// EndpointResolver maps an operator id to its vault base URL; wired from
// the operator repository at construction.
type EndpointResolver func(ctx context.Context, operatorID int) (string, error)

// HTTPVaultClient speaks to external operator vaults over HTTP. Each
// operator exposes /vault/delegate, /vault/undelegate and /vault/rewards.
type HTTPVaultClient struct {
	client  clients.HTTPClientI
	resolve EndpointResolver
}

func NewHTTPVaultClient(client clients.HTTPClientI, resolve EndpointResolver) *HTTPVaultClient {
	return &HTTPVaultClient{
		client:  client,
		resolve: resolve,
	}
}

type vaultRequest struct {
	Amount int64 `json:"amount"`
}

type vaultRewardsResponse struct {
	Amount int64 `json:"amount"`
}

func (c *HTTPVaultClient) Delegate(ctx context.Context, operatorID int, amount int64) error {
	return c.post(ctx, operatorID, "/vault/delegate", amount)
}

func (c *HTTPVaultClient) Undelegate(ctx context.Context, operatorID int, amount int64) error {
	return c.post(ctx, operatorID, "/vault/undelegate", amount)
}

func (c *HTTPVaultClient) ClaimRewards(ctx context.Context, operatorID int) (int64, error) {
	endpoint, err := c.resolve(ctx, operatorID)
	if err != nil {
		return 0, err
	}

	statusCode, respBody, _, err := c.client.Post(endpoint+"/vault/rewards", nil, nil)
	if err != nil {
		return 0, fmt.Errorf("claim rewards from operator %d: %w", operatorID, err)
	}
	if statusCode != http.StatusOK {
		return 0, fmt.Errorf("claim rewards from operator %d: unexpected status %d", operatorID, statusCode)
	}

	var resp vaultRewardsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return 0, fmt.Errorf("claim rewards from operator %d: %w", operatorID, err)
	}
	return resp.Amount, nil
}

func (c *HTTPVaultClient) post(ctx context.Context, operatorID int, path string, amount int64) error {
	endpoint, err := c.resolve(ctx, operatorID)
	if err != nil {
		return err
	}

	body, err := json.Marshal(vaultRequest{Amount: amount})
	if err != nil {
		return err
	}

	statusCode, _, _, err := c.client.Post(endpoint+path, nil, body)
	if err != nil {
		return fmt.Errorf("vault call %s for operator %d: %w", path, operatorID, err)
	}
	if statusCode != http.StatusOK {
		zap.L().Error("vault call failed",
			zap.Int("operatorID", operatorID),
			zap.String("path", path),
			zap.Int("status", statusCode),
		)
		return fmt.Errorf("vault call %s for operator %d: unexpected status %d", path, operatorID, statusCode)
	}
	return nil
}
