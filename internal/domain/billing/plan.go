package billing

import "fmt"

// Well-known plan identifiers. Plans are seeded from configuration and
// referenced by string ID in subscriptions and checkout metadata.
const (
	PlanFree    = "free"
	PlanCreator = "creator"
	PlanPro     = "pro"
)

// Plan represents a subscription tier offered to creators.
type Plan struct {
	id            string
	name          string
	description   string
	priceCents    int64
	currency      string
	stripePriceID string
	maxCourses    int
	active        bool
}

// NewPlan creates a plan definition.
func NewPlan(id, name, description string, priceCents int64, currency, stripePriceID string, maxCourses int, active bool) (*Plan, error) {
	if id == "" {
		return nil, ErrPlanIDRequired
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if priceCents < 0 {
		return nil, fmt.Errorf("plan price cannot be negative")
	}

	return &Plan{
		id:            id,
		name:          name,
		description:   description,
		priceCents:    priceCents,
		currency:      currency,
		stripePriceID: stripePriceID,
		maxCourses:    maxCourses,
		active:        active,
	}, nil
}

// ID returns the plan identifier.
func (p *Plan) ID() string {
	return p.id
}

// Name returns the display name.
func (p *Plan) Name() string {
	return p.name
}

// Description returns the marketing description.
func (p *Plan) Description() string {
	return p.description
}

// PriceCents returns the monthly price in the smallest currency unit.
func (p *Plan) PriceCents() int64 {
	return p.priceCents
}

// Currency returns the ISO currency code.
func (p *Plan) Currency() string {
	return p.currency
}

// StripePriceID returns the provider price backing this plan, empty for
// the free tier.
func (p *Plan) StripePriceID() string {
	return p.stripePriceID
}

// MaxCourses returns the publishing limit, 0 meaning unlimited.
func (p *Plan) MaxCourses() int {
	return p.maxCourses
}

// IsActive reports whether the plan can be subscribed to.
func (p *Plan) IsActive() bool {
	return p.active
}

// IsFree reports whether this is the free tier.
func (p *Plan) IsFree() bool {
	return p.id == PlanFree
}
