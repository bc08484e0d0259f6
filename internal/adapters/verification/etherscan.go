package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

const (
	resultPending      = "Pending in queue"
	resultUnableLocate = "Unable to locate ContractCode"
)

// apiResponse is the envelope every Etherscan-compatible endpoint returns
type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

func (r apiResponse) ok() bool {
	return r.Status == "1"
}

func alreadyVerified(result string) bool {
	lower := strings.ToLower(result)
	return strings.Contains(lower, "already verified")
}

// EtherscanClient submits sources to Etherscan-compatible explorers
type EtherscanClient struct {
	httpClient   *http.Client
	pollInterval time.Duration
	maxPolls     int
	log          *slog.Logger
}

// NewEtherscanClient creates a new explorer client
func NewEtherscanClient(log *slog.Logger) *EtherscanClient {
	return &EtherscanClient{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		pollInterval: 5 * time.Second,
		maxPolls:     30,
		log:          log.With("component", "etherscan"),
	}
}

// VerifySource submits standard JSON input and waits for the explorer's verdict
func (c *EtherscanClient) VerifySource(ctx context.Context, target usecase.ExplorerTarget, req domain.SourceVerification) error {
	form := url.Values{}
	form.Set("apikey", target.APIKey)
	form.Set("module", "contract")
	form.Set("action", "verifysourcecode")
	form.Set("contractaddress", req.Address)
	form.Set("sourceCode", string(req.StandardJSON))
	form.Set("codeformat", "solidity-standard-json-input")
	form.Set("contractname", req.ContractName)
	form.Set("compilerversion", req.CompilerVersion)
	// the misspelling is part of the explorer API
	form.Set("constructorArguements", req.ConstructorArgs)

	var guid string
	for attempt := 0; ; attempt++ {
		resp, err := c.post(ctx, target.APIURL, form)
		if err != nil {
			return err
		}
		if resp.ok() {
			guid = resp.Result
			break
		}
		if alreadyVerified(resp.Result) {
			return domain.ErrAlreadyVerified
		}
		// freshly deployed code is not always indexed yet
		if strings.Contains(resp.Result, resultUnableLocate) && attempt < c.maxPolls {
			c.log.Debug("explorer has not indexed contract yet", "address", req.Address)
			if err := c.sleep(ctx); err != nil {
				return err
			}
			continue
		}
		return fmt.Errorf("%w: %s: %s", domain.ErrVerificationFailed, resp.Message, resp.Result)
	}

	c.log.Debug("verification submitted", "address", req.Address, "guid", guid)
	return c.poll(ctx, target, "checkverifystatus", guid)
}

// VerifyProxy links a proxy to its implementation on the explorer
func (c *EtherscanClient) VerifyProxy(ctx context.Context, target usecase.ExplorerTarget, proxyAddress, expectedImplementation string) error {
	form := url.Values{}
	form.Set("apikey", target.APIKey)
	form.Set("module", "contract")
	form.Set("action", "verifyproxycontract")
	form.Set("address", proxyAddress)
	if expectedImplementation != "" {
		form.Set("expectedimplementation", expectedImplementation)
	}

	resp, err := c.post(ctx, target.APIURL, form)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return fmt.Errorf("%w: proxy %s: %s", domain.ErrVerificationFailed, proxyAddress, resp.Result)
	}
	return c.poll(ctx, target, "checkproxyverification", resp.Result)
}

func (c *EtherscanClient) poll(ctx context.Context, target usecase.ExplorerTarget, action, guid string) error {
	query := url.Values{}
	query.Set("apikey", target.APIKey)
	query.Set("module", "contract")
	query.Set("action", action)
	query.Set("guid", guid)

	for i := 0; i < c.maxPolls; i++ {
		if err := c.sleep(ctx); err != nil {
			return err
		}

		resp, err := c.get(ctx, target.APIURL, query)
		if err != nil {
			return err
		}
		switch {
		case strings.Contains(resp.Result, resultPending):
			c.log.Debug("verification pending", "guid", guid)
			continue
		case alreadyVerified(resp.Result):
			return domain.ErrAlreadyVerified
		case resp.ok():
			return nil
		default:
			return fmt.Errorf("%w: %s", domain.ErrVerificationFailed, resp.Result)
		}
	}
	return fmt.Errorf("%w: still pending after %d checks (guid %s)", domain.ErrVerificationFailed, c.maxPolls, guid)
}

func (c *EtherscanClient) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.pollInterval):
		return nil
	}
}

func (c *EtherscanClient) post(ctx context.Context, apiURL string, form url.Values) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *EtherscanClient) get(ctx context.Context, apiURL string, query url.Values) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

func (c *EtherscanClient) do(req *http.Request) (*apiResponse, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// Ensure the adapter implements the interface
var _ usecase.ContractVerifier = (*EtherscanClient)(nil)
