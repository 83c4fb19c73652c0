package category

import (
	"strings"
	"time"
	"unicode"

	categoryDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/category"
)

// Scope tags who a category belongs to, so visibility and mutation rules are
// decided by exhaustive switches instead of nil checks.
type Scope int

const (
	// ScopeDefault categories have no owner and are visible to every user.
	ScopeDefault Scope = iota
	// ScopeOwned categories belong to exactly one user.
	ScopeOwned
)

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Scope     Scope     `json:"-"`
	OwnerID   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) IsDefault() bool {
	return c.Scope == ScopeDefault
}

func (c *Category) VisibleTo(userID string) bool {
	switch c.Scope {
	case ScopeDefault:
		return true
	case ScopeOwned:
		return c.OwnerID == userID
	}
	return false
}

// OwnedBy reports whether userID may mutate the category. Defaults are never
// mutable through the API.
func (c *Category) OwnedBy(userID string) bool {
	return c.Scope == ScopeOwned && c.OwnerID == userID
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		IsDefault: c.IsDefault(),
		CreatedAt: c.CreatedAt,
	}
}

// NormalizeName trims surrounding whitespace and upper-cases the first rune;
// uniqueness checks and storage both use the normalized form.
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	runes := []rune(trimmed)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	dm := &categoryDatamodel.Category{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Scope == ScopeOwned {
		ownerID := c.OwnerID
		dm.UserID = &ownerID
	}
	return dm
}

func FromDataModel(dm *categoryDatamodel.Category) *Category {
	c := &Category{
		ID:        dm.ID,
		Name:      dm.Name,
		Scope:     ScopeDefault,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
	if dm.UserID != nil {
		c.Scope = ScopeOwned
		c.OwnerID = *dm.UserID
	}
	return c
}

func FromDataModelSlice(dms []*categoryDatamodel.Category) []*Category {
	result := make([]*Category, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}
