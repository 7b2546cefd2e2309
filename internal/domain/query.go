package domain

// ConstraintOp identifies a query constraint type
type ConstraintOp string

const (
	OpEquals     ConstraintOp = "equals"
	OpRangeStart ConstraintOp = "rangeStart" // field >= value
	OpRangeEnd   ConstraintOp = "rangeEnd"   // field <= value
	OpOrderBy    ConstraintOp = "orderBy"
)

// SortDirection is the ordering direction for OpOrderBy constraints
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Constraint is one structured query constraint against a collection.
// Constraints are ordered; the backend applies them in sequence, and the
// orderBy constraint must come last for cursor pagination to stay valid.
type Constraint struct {
	Op        ConstraintOp
	Field     string
	Value     any
	Direction SortDirection // OpOrderBy only
}

// Equals builds an equality constraint
func Equals(field string, value any) Constraint {
	return Constraint{Op: OpEquals, Field: field, Value: value}
}

// RangeStart builds a "field >= value" constraint
func RangeStart(field string, value any) Constraint {
	return Constraint{Op: OpRangeStart, Field: field, Value: value}
}

// RangeEnd builds a "field <= value" constraint
func RangeEnd(field string, value any) Constraint {
	return Constraint{Op: OpRangeEnd, Field: field, Value: value}
}

// OrderBy builds an ordering constraint
func OrderBy(field string, dir SortDirection) Constraint {
	return Constraint{Op: OpOrderBy, Field: field, Direction: dir}
}
