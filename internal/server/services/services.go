// Package services contains server-side business logic: the credential store
// behind registration, login and the auth gate, and the owner-scoped resource
// stores for subjects, notes and events.
package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/khonsu303/estudio/internal/dbx"
	"github.com/khonsu303/estudio/internal/logging"
	"github.com/khonsu303/estudio/internal/server/activity"
	"github.com/khonsu303/estudio/internal/server/repositories/repomanager"
	"github.com/khonsu303/estudio/internal/server/validation"
)

// Deps are shared by every service. A nil DB means the repository manager
// keeps its own state (the in-memory backend) and runs without transactions.
type Deps struct {
	DB          *sql.DB
	Repomanager repomanager.RepositoryManager
	Validator   *validation.Validator
	Activity    activity.Publisher
	Log         logging.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Validator == nil {
		d.Validator = validation.New()
	}
	if d.Activity == nil {
		d.Activity = activity.Noop{}
	}
	if d.Log == nil {
		d.Log = logging.Nop{}
	}
	return d
}

func (d Deps) publish(ctx context.Context, typ, userID, resourceID string) {
	d.Activity.Publish(ctx, activity.Activity{Type: typ, UserID: userID, ResourceID: resourceID})
}

func (d Deps) inTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if d.DB == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, d.DB, nil, fn)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// cleanTags trims every tag and drops empty ones, keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
