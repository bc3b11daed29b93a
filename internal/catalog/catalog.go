// Package catalog holds the static registry of reward programs.
package catalog

import (
	"fmt"

	"rewardtrack/internal/domain/types"
	"rewardtrack/internal/policy"
)

// Location is a physical store linked from a program's card.
type Location struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Display carries presentation metadata. The engine never reads it.
type Display struct {
	LogoURL        string     `json:"logo_url,omitempty"`
	RedemptionHint string     `json:"redemption_hint,omitempty"`
	QuickPicks     []int64    `json:"quick_picks,omitempty"`
	Locations      []Location `json:"locations,omitempty"`
}

// Program is one loyalty scheme. Programs are immutable once registered.
type Program struct {
	ID              types.ProgramID `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Policy          policy.Policy   `json:"-"`
	RedemptionTiers []types.Tier    `json:"redemption_tiers"`
	InitialPoints   int64           `json:"initial_points"`
	Display         Display         `json:"display"`
}

// Catalog is an ordered, read-only set of programs.
type Catalog struct {
	programs []Program
	byID     map[types.ProgramID]int
}

// New validates programs and returns a catalog preserving their order.
func New(programs ...Program) (*Catalog, error) {
	c := &Catalog{
		programs: make([]Program, 0, len(programs)),
		byID:     make(map[types.ProgramID]int, len(programs)),
	}
	for _, p := range programs {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("%w %q: %v", types.ErrInvalidProgram, p.ID, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w %q: duplicate id", types.ErrInvalidProgram, p.ID)
		}
		c.byID[p.ID] = len(c.programs)
		c.programs = append(c.programs, p)
	}
	return c, nil
}

// Lookup returns the program registered under id.
func (c *Catalog) Lookup(id types.ProgramID) (Program, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Program{}, false
	}
	return c.programs[i], true
}

// Programs returns every program in declaration order.
func (c *Catalog) Programs() []Program {
	return append([]Program(nil), c.programs...)
}

// IDs returns every program id in declaration order.
func (c *Catalog) IDs() []types.ProgramID {
	out := make([]types.ProgramID, len(c.programs))
	for i, p := range c.programs {
		out[i] = p.ID
	}
	return out
}

// AffordableTiers marks each of p's redemption tiers the balance can cover.
func AffordableTiers(p Program, balance int64) []types.TierStatus {
	out := make([]types.TierStatus, len(p.RedemptionTiers))
	for i, tier := range p.RedemptionTiers {
		out[i] = types.TierStatus{Tier: tier, Affordable: balance >= tier.Points}
	}
	return out
}

func validate(p Program) error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if p.InitialPoints < 0 {
		return fmt.Errorf("initial points must not be negative, got %d", p.InitialPoints)
	}
	if err := policy.Validate(p.Policy); err != nil {
		return err
	}
	if err := policy.ValidateTiers(p.RedemptionTiers); err != nil {
		return fmt.Errorf("redemption tiers: %w", err)
	}
	switch p.Policy.Kind() {
	case policy.KindStepTiered, policy.KindInterpolatedTiers:
		if len(p.RedemptionTiers) == 0 {
			return fmt.Errorf("redemption tiers are required for %s programs", p.Policy.Kind())
		}
	}
	return nil
}
