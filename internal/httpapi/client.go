package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"rewardtrack/internal/domain"
	"rewardtrack/internal/domain/types"
)

// Client implements domain.RewardsService against a running server.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a client for the server at base, e.g. http://127.0.0.1:8080.
func NewClient(base string) *Client {
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: http.DefaultClient}
}

var _ domain.RewardsService = (*Client)(nil)

// sentinels maps response reasons back to the engine's errors.
var sentinels = map[string]error{
	"program_not_found":          types.ErrProgramNotFound,
	"missing_date":               types.ErrMissingDate,
	"invalid_amount":             types.ErrInvalidAmount,
	"stale_state":                types.ErrStaleState,
	"redemption_exceeds_balance": types.ErrRedemptionExceedsBalance,
	"invalid_redemption_amount":  types.ErrInvalidRedemptionAmount,
	"persistence_write":          types.ErrPersistenceWrite,
}

func (c *Client) RecordPurchase(req domain.PurchaseRequest) (types.Receipt, error) {
	var out receiptView
	err := c.post(programPath(req.ProgramID, "purchases"), purchaseBody{
		Amount:          req.Amount,
		Date:            req.Date,
		RedeemPoints:    req.RedeemPoints,
		ExpectedBalance: req.ExpectedBalance,
	}, &out)
	if err != nil {
		return types.Receipt{}, err
	}
	receipt := out.Receipt
	if out.Warning != "" {
		receipt.Warning = fmt.Errorf("%w: %s", types.ErrPersistenceWrite, out.Warning)
	}
	return receipt, nil
}

func (c *Client) PreviewRedemption(id types.ProgramID, points int64) (types.Preview, error) {
	var out types.Preview
	q := url.Values{"points": {strconv.FormatInt(points, 10)}}
	return out, c.getJSON(programPath(id, "preview")+"?"+q.Encode(), &out)
}

func (c *Client) PlanPurchase(id types.ProgramID, amount decimal.Decimal, points int64) (types.Plan, error) {
	var out types.Plan
	q := url.Values{
		"amount": {amount.String()},
		"points": {strconv.FormatInt(points, 10)},
	}
	return out, c.getJSON(programPath(id, "plan")+"?"+q.Encode(), &out)
}

func (c *Client) Balance(id types.ProgramID) (int64, error) {
	var out programView
	if err := c.getJSON(programPath(id, ""), &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

func (c *Client) History(id types.ProgramID) ([]types.Transaction, error) {
	var out []types.Transaction
	return out, c.getJSON(programPath(id, "history"), &out)
}

func (c *Client) Tiers(id types.ProgramID) ([]types.TierStatus, error) {
	var out programView
	if err := c.getJSON(programPath(id, ""), &out); err != nil {
		return nil, err
	}
	return out.Tiers, nil
}

func programPath(id types.ProgramID, sub string) string {
	p := "/programs/" + url.PathEscape(string(id))
	if sub != "" {
		p += "/" + sub
	}
	return p
}

func (c *Client) post(path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		var e errorView
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			if sentinel, ok := sentinels[e.Reason]; ok {
				return fmt.Errorf("%w (%s)", sentinel, e.Error)
			}
		}
		return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
