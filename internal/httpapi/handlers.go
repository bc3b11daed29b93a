package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"rewardtrack/internal/catalog"
	"rewardtrack/internal/domain"
	"rewardtrack/internal/domain/types"
	"rewardtrack/internal/policy"
	"rewardtrack/internal/services/rewards"
)

type programView struct {
	catalog.Program
	Kind    policy.Kind        `json:"kind"`
	Rules   string             `json:"rules"`
	Balance int64              `json:"balance"`
	Tiers   []types.TierStatus `json:"tiers"`
}

type purchaseBody struct {
	Amount          decimal.Decimal `json:"amount"`
	Date            types.Date      `json:"date"`
	RedeemPoints    int64           `json:"redeem_points"`
	ExpectedBalance *int64          `json:"expected_balance,omitempty"`
}

type receiptView struct {
	types.Receipt
	Warning string `json:"warning,omitempty"`
}

func (s *Server) view(p catalog.Program) (programView, error) {
	balance, err := s.rewards.Balance(p.ID)
	if err != nil {
		return programView{}, err
	}
	tiers, err := s.rewards.Tiers(p.ID)
	if err != nil {
		return programView{}, err
	}
	return programView{
		Program: p,
		Kind:    p.Policy.Kind(),
		Rules:   policy.Describe(p.Policy),
		Balance: balance,
		Tiers:   tiers,
	}, nil
}

func (s *Server) listPrograms(w http.ResponseWriter, _ *http.Request) {
	programs := s.catalog.Programs()
	out := make([]programView, 0, len(programs))
	for _, p := range programs {
		v, err := s.view(p)
		if err != nil {
			s.writeError(w, err)
			return
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) program(r *http.Request) (catalog.Program, error) {
	id := types.ProgramID(chi.URLParam(r, "id"))
	p, ok := s.catalog.Lookup(id)
	if !ok {
		return catalog.Program{}, fmt.Errorf("%w: %q", types.ErrProgramNotFound, id)
	}
	return p, nil
}

func (s *Server) getProgram(w http.ResponseWriter, r *http.Request) {
	p, err := s.program(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	v, err := s.view(p)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.rewards.History(types.ProgramID(chi.URLParam(r, "id")))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) getPreview(w http.ResponseWriter, r *http.Request) {
	points, err := queryPoints(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	preview, err := s.rewards.PreviewRedemption(types.ProgramID(chi.URLParam(r, "id")), points)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	amount, err := rewards.ParseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	points, err := queryPoints(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	plan, err := s.rewards.PlanPurchase(types.ProgramID(chi.URLParam(r, "id")), amount, points)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) postPurchase(w http.ResponseWriter, r *http.Request) {
	var body purchaseBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorView{Error: "invalid request body: " + err.Error(), Reason: "bad_request"})
		return
	}
	receipt, err := s.rewards.RecordPurchase(domain.PurchaseRequest{
		ProgramID:       types.ProgramID(chi.URLParam(r, "id")),
		Amount:          body.Amount,
		Date:            body.Date,
		RedeemPoints:    body.RedeemPoints,
		ExpectedBalance: body.ExpectedBalance,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := receiptView{Receipt: receipt}
	if receipt.Warning != nil {
		out.Warning = receipt.Warning.Error()
	}
	writeJSON(w, http.StatusCreated, out)
}

// queryPoints reads ?points=, defaulting to zero when absent.
func queryPoints(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("points")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidRedemptionAmount, raw)
	}
	return n, nil
}

type errorView struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, types.ErrProgramNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrRedemptionExceedsBalance),
		errors.Is(err, types.ErrStaleState):
		return http.StatusConflict
	case errors.Is(err, types.ErrMissingDate),
		errors.Is(err, types.ErrInvalidAmount),
		errors.Is(err, types.ErrInvalidRedemptionAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorView{Error: err.Error(), Reason: rewards.Reason(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
