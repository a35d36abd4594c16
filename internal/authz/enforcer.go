// Package authz decides role capabilities with a casbin policy. The model
// and default policy are embedded; a policy file on disk replaces the
// embedded policy when configured.
package authz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Enforcer implements ports.Authorizer.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

var _ ports.Authorizer = (*Enforcer)(nil)

// NewEnforcer builds an enforcer from the embedded model. policyPath is
// optional; when empty or missing the embedded policy is loaded.
func NewEnforcer(policyPath string) (*Enforcer, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if policyPath != "" && fileExists(policyPath) {
		enforcer, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(policyPath))
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadEmbeddedPolicy(enforcer, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{enforcer: enforcer}, nil
}

// Authorize returns nil when the principal's role may perform action on
// resource.
func (e *Enforcer) Authorize(p domain.Principal, resource, action string) error {
	if !p.Authenticated() {
		return domain.ErrUnauthenticated
	}
	ok, err := e.enforcer.Enforce(p.Role, resource, action)
	if err != nil {
		return fmt.Errorf("enforce %s %s:%s: %w", p.Role, resource, action, err)
	}
	if !ok {
		return domain.Forbiddenf("role %s may not %s %s", p.Role, action, resource)
	}
	return nil
}

func loadEmbeddedPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if parts[0] != "p" || len(parts) < 4 {
			continue
		}
		if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
			return fmt.Errorf("failed to add policy %v: %w", parts[1:], err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
