package audit

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/zainmh-10/CreateAILab/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
	facetLimit   = 300
)

// Filter narrows an audit listing. Empty fields match everything.
type Filter struct {
	UserID string
	Entity string
	Action string
	Status string
	Limit  int
}

// ParseLimit returns raw as a row cap within (0, MaxLimit], or DefaultLimit.
func ParseLimit(raw string) int {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || n <= 0 || n > MaxLimit {
		return DefaultLimit
	}
	if int(n) < 1 {
		return DefaultLimit
	}
	return int(n)
}

// Facets lists the distinct values present, for filter drop-downs.
type Facets struct {
	Entities []string `json:"entities"`
	Actions  []string `json:"actions"`
	Statuses []string `json:"statuses"`
}

type row struct {
	ID        int64             `gorm:"column:id"`
	CreatedAt time.Time         `gorm:"column:created_at"`
	UserID    string            `gorm:"column:user_id"`
	Action    string            `gorm:"column:action"`
	Entity    string            `gorm:"column:entity"`
	TargetID  *string           `gorm:"column:target_id"`
	Status    string            `gorm:"column:status"`
	Message   *string           `gorm:"column:message"`
	Meta      datatypes.JSONMap `gorm:"column:meta"`
}

func (r row) entry() domain.AuditEntry {
	return domain.AuditEntry{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		UserID:    r.UserID,
		Action:    domain.Verb(r.Action),
		Entity:    domain.Entity(r.Entity),
		TargetID:  r.TargetID,
		Status:    domain.AuditStatus(r.Status),
		Message:   r.Message,
		Meta:      map[string]any(r.Meta),
	}
}

// List returns matching rows newest first.
func (r *Recorder) List(ctx context.Context, f Filter) ([]domain.AuditEntry, error) {
	if r.db == nil {
		return nil, domain.ErrStorageUnavailable
	}
	if f.Limit <= 0 || f.Limit > MaxLimit {
		f.Limit = DefaultLimit
	}

	q := r.db.WithContext(ctx).Table("AdminAuditLog").
		Select("id, created_at, user_id, action, entity, target_id, status, message, meta")
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var rows []row
	if err := q.Order("created_at DESC").Limit(f.Limit).Scan(&rows).Error; err != nil {
		if isUndefinedTable(err) {
			return nil, ErrTableMissing
		}
		return nil, fmt.Errorf("list audit rows: %w", err)
	}

	out := make([]domain.AuditEntry, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.entry())
	}
	return out, nil
}

type facetRow struct {
	Entity string `gorm:"column:entity"`
	Action string `gorm:"column:action"`
	Status string `gorm:"column:status"`
}

// Facets returns the distinct entity, action and status values.
func (r *Recorder) Facets(ctx context.Context) (Facets, error) {
	facets := Facets{Entities: []string{}, Actions: []string{}, Statuses: []string{}}
	if r.db == nil {
		return facets, domain.ErrStorageUnavailable
	}

	var rows []facetRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT entity, action, status FROM "AdminAuditLog" ORDER BY entity, action, status LIMIT ?`, facetLimit).
		Scan(&rows).Error
	if err != nil {
		if isUndefinedTable(err) {
			return facets, ErrTableMissing
		}
		return facets, fmt.Errorf("audit facets: %w", err)
	}

	facets.Entities = distinct(rows, func(r facetRow) string { return r.Entity })
	facets.Actions = distinct(rows, func(r facetRow) string { return r.Action })
	facets.Statuses = distinct(rows, func(r facetRow) string { return r.Status })
	return facets, nil
}

func distinct[T any](rows []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(rows))
	out := []string{}
	for _, r := range rows {
		k := key(r)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
