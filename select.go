package searchresult

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"
	"github.com/google/uuid"
)

// Select is the query handle of a Collection.
//
// Host code paths expect every listing to sit on top of a query builder. A
// Collection has none, so Select only exists to satisfy that expectation: it
// records the query mods callers apply and describes the query the collection
// emulates in memory, but it never executes anything.
type Select struct {
	id    uuid.UUID
	owner *Collection
	mods  []qm.QueryMod
}

func newSelect(owner *Collection) *Select {
	return &Select{
		id:    uuid.New(),
		owner: owner,
	}
}

// ID returns the handle's identity, unique per collection instance.
func (s *Select) ID() uuid.UUID {
	return s.id
}

// Identifier returns the record source identifier of the owning collection.
func (s *Select) Identifier() string {
	return s.owner.identifier
}

// Owner reports whether the handle belongs to c.
func (s *Select) Owner(c *Collection) bool {
	return s.owner == c
}

// Apply records query mods without running them and returns the handle for
// chaining. They have no effect on what the collection loads.
func (s *Select) Apply(mods ...qm.QueryMod) *Select {
	s.mods = append(s.mods, mods...)
	return s
}

// QueryMods returns the applied mods followed by the offset, limit and order by
// mods equivalent to the collection's page window and active order.
//
// The conversion follows these rules:
//   - Offset → qm.Offset(n), only when n > 0
//   - PageSize → qm.Limit(n), only for a limited page
//   - first order → qm.OrderBy("field DESC")
func (s *Select) QueryMods() []qm.QueryMod {
	mods := make([]qm.QueryMod, 0, len(s.mods)+3)
	mods = append(mods, s.mods...)

	w := s.owner.window()
	if offset := w.Start(); offset > 0 {
		mods = append(mods, qm.Offset(offset))
	}

	if !w.Unlimited() {
		mods = append(mods, qm.Limit(w.PageSize))
	}

	if o, ok := s.owner.activeOrder(); ok {
		mods = append(mods, qm.OrderBy(orderByClause(o)))
	}

	return mods
}

// String describes the emulated query, for logging.
//
// Example:
//
//	SELECT * FROM "category-url-key" ORDER BY id LIMIT 20 OFFSET 20
func (s *Select) String() string {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(strmangle.IdentQuote('"', '"', s.owner.identifier))

	if o, ok := s.owner.activeOrder(); ok {
		b.WriteString(" ORDER BY ")
		b.WriteString(orderByClause(o))
	}

	w := s.owner.window()
	if !w.Unlimited() {
		fmt.Fprintf(&b, " LIMIT %d", w.PageSize)
	}
	if offset := w.Start(); offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", offset)
	}

	return b.String()
}

// Exec always fails: there is no store to run a query against.
func (s *Select) Exec(ctx context.Context) error {
	return notImplemented("Select.Exec")
}

// All always fails: items are only available through the owning collection.
func (s *Select) All(ctx context.Context) ([]Record, error) {
	return nil, notImplemented("Select.All")
}

// orderByClause renders an order the way an ORDER BY clause lists it.
//
// Example:
//
//	Order{Field: "id", Direction: DESC} → "id DESC"
//	Order{Field: "id", Direction: ASC}  → "id"
func orderByClause(o Order) string {
	if o.Desc() {
		return o.Field + " DESC"
	}
	return o.Field
}
