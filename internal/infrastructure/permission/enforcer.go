package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"studia/internal/shared/logger"
)

// Enforcer wraps Casbin with role-based policies. The subject is the
// role carried on the user aggregate, not the user ID.
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, modelPath string, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(modelPath, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

func (e *Enforcer) AddPolicy(role, resource, action string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPolicy(role, resource, action); err != nil {
		return fmt.Errorf("failed to add policy: %w", err)
	}

	return e.enforcer.SavePolicy()
}

// SeedPolicies installs the marketplace policy set. AddPolicy ignores
// duplicates, so reseeding on startup is safe.
func (e *Enforcer) SeedPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	policies := [][]string{
		// Any active account can author and sell courses.
		{"user", "courses", "write"},
		{"user", "checkout", "create"},
		{"user", "library", "read"},
		{"user", "billing", "read"},

		{"admin", "courses", "write"},
		{"admin", "courses", "moderate"},
		{"admin", "checkout", "create"},
		{"admin", "library", "read"},
		{"admin", "billing", "read"},
		{"admin", "plans", "manage"},
	}

	for _, policy := range policies {
		if _, err := e.enforcer.AddPolicy(policy); err != nil {
			return fmt.Errorf("failed to seed policy %v: %w", policy, err)
		}
	}

	if err := e.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("failed to save policies: %w", err)
	}

	e.logger.Infow("casbin policies seeded", "count", len(policies))
	return nil
}
