package verification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

type fakeExplorer struct {
	mu      sync.Mutex
	submits []map[string]string
	polls   int
	pending int // polls answered with "Pending in queue"
	submit  apiResponse
	verdict apiResponse
}

func (f *fakeExplorer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_ = r.ParseForm()
	var resp apiResponse
	switch r.Method {
	case http.MethodPost:
		fields := map[string]string{}
		for k := range r.PostForm {
			fields[k] = r.PostForm.Get(k)
		}
		f.submits = append(f.submits, fields)
		resp = f.submit
	default:
		f.polls++
		if f.polls <= f.pending {
			resp = apiResponse{Status: "0", Message: "NOTOK", Result: "Pending in queue"}
		} else {
			resp = f.verdict
		}
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func newTestClient(t *testing.T, explorer *fakeExplorer) (*EtherscanClient, usecase.ExplorerTarget) {
	t.Helper()
	srv := httptest.NewServer(explorer)
	t.Cleanup(srv.Close)

	c := NewEtherscanClient(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.pollInterval = time.Millisecond
	c.maxPolls = 5
	return c, usecase.ExplorerTarget{APIURL: srv.URL + "/api", APIKey: "KEY"}
}

var sourceRequest = domain.SourceVerification{
	Address:         "0x5FbDB2315678afecb367f032d93F642f64180aa3",
	ContractName:    "contracts/Auction.sol:Auction",
	CompilerVersion: "v0.8.19+commit.7dd6d404",
	StandardJSON:    []byte(`{"language":"Solidity"}`),
	ConstructorArgs: "00ff",
}

func TestVerifySource(t *testing.T) {
	explorer := &fakeExplorer{
		pending: 2,
		submit:  apiResponse{Status: "1", Message: "OK", Result: "guid-1"},
		verdict: apiResponse{Status: "1", Message: "OK", Result: "Pass - Verified"},
	}
	c, target := newTestClient(t, explorer)

	require.NoError(t, c.VerifySource(context.Background(), target, sourceRequest))

	require.Len(t, explorer.submits, 1)
	form := explorer.submits[0]
	assert.Equal(t, "verifysourcecode", form["action"])
	assert.Equal(t, "solidity-standard-json-input", form["codeformat"])
	assert.Equal(t, "contracts/Auction.sol:Auction", form["contractname"])
	assert.Equal(t, "v0.8.19+commit.7dd6d404", form["compilerversion"])
	assert.Equal(t, "00ff", form["constructorArguements"])
	assert.Equal(t, "KEY", form["apikey"])
	assert.Equal(t, 3, explorer.polls)
}

func TestVerifySourceAlreadyVerified(t *testing.T) {
	explorer := &fakeExplorer{
		submit: apiResponse{Status: "0", Message: "NOTOK", Result: "Contract source code already verified"},
	}
	c, target := newTestClient(t, explorer)

	err := c.VerifySource(context.Background(), target, sourceRequest)
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified)
	assert.Zero(t, explorer.polls)
}

func TestVerifySourceFails(t *testing.T) {
	explorer := &fakeExplorer{
		submit:  apiResponse{Status: "1", Message: "OK", Result: "guid-1"},
		verdict: apiResponse{Status: "0", Message: "NOTOK", Result: "Fail - Unable to verify"},
	}
	c, target := newTestClient(t, explorer)

	err := c.VerifySource(context.Background(), target, sourceRequest)
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
	assert.ErrorContains(t, err, "Fail - Unable to verify")
}

func TestVerifySourceStillPending(t *testing.T) {
	explorer := &fakeExplorer{
		pending: 100,
		submit:  apiResponse{Status: "1", Message: "OK", Result: "guid-1"},
	}
	c, target := newTestClient(t, explorer)

	err := c.VerifySource(context.Background(), target, sourceRequest)
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
	assert.ErrorContains(t, err, "still pending")
}

func TestVerifyProxy(t *testing.T) {
	explorer := &fakeExplorer{
		submit:  apiResponse{Status: "1", Message: "OK", Result: "proxy-guid"},
		verdict: apiResponse{Status: "1", Message: "OK", Result: "The proxy's implementation contract is found and is successfully updated."},
	}
	c, target := newTestClient(t, explorer)

	require.NoError(t, c.VerifyProxy(context.Background(), target, "0xproxy", "0ximpl"))
	require.Len(t, explorer.submits, 1)
	assert.Equal(t, "verifyproxycontract", explorer.submits[0]["action"])
	assert.Equal(t, "0xproxy", explorer.submits[0]["address"])
	assert.Equal(t, "0ximpl", explorer.submits[0]["expectedimplementation"])
}

func TestVerifyHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewEtherscanClient(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := c.VerifyProxy(context.Background(), usecase.ExplorerTarget{APIURL: srv.URL}, "0xproxy", "")
	assert.ErrorContains(t, err, "unexpected status code: 429")
}
