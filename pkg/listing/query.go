package listing

import (
	"fmt"
	"strings"

	"github.com/Vinzor11/hrgrid/pkg/database"
	"github.com/Vinzor11/hrgrid/pkg/fieldschema"
	"github.com/Vinzor11/hrgrid/pkg/filter"
	"github.com/Vinzor11/hrgrid/pkg/logger"
	"github.com/Vinzor11/hrgrid/pkg/querystate"
)

// Sortable columns outside the filter catalog.
var extraSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
}

// applyQuickFilters narrows the query by the quick-filter fragments.
func applyQuickFilters(q database.SelectQuery, state querystate.QueryState) database.SelectQuery {
	if !state.ShowDeleted {
		q = q.Where("deleted_at IS NULL")
	}
	if state.Status != "" {
		q = q.Where("status = ?", state.Status)
	}
	if len(state.DepartmentIDs) > 0 {
		expr, args := inClause("department_id", "IN", state.DepartmentIDs)
		q = q.Where(expr, args...)
	}
	if len(state.PositionIDs) > 0 {
		expr, args := inClause("position_id", "IN", state.PositionIDs)
		q = q.Where(expr, args...)
	}
	if state.EmployeeType != "" {
		q = q.Where("employee_type = ?", state.EmployeeType)
	}
	return q
}

// applySearch narrows the query by free-text search, scoped per search mode.
func applySearch(q database.SelectQuery, state querystate.QueryState) database.SelectQuery {
	if state.Search == "" {
		return q
	}
	pattern := "%" + strings.ToLower(state.Search) + "%"

	switch state.SearchMode {
	case querystate.SearchID:
		return q.Where("LOWER(employee_no) LIKE ?", pattern)
	case querystate.SearchName:
		return q.Where("(LOWER(first_name) LIKE ? OR LOWER(surname) LIKE ?)", pattern, pattern)
	case querystate.SearchPosition:
		return q.Where("position_id IN (SELECT id FROM positions WHERE LOWER(name) LIKE ?)", pattern)
	case querystate.SearchDepartment:
		return q.Where("department_id IN (SELECT id FROM departments WHERE LOWER(name) LIKE ?)", pattern)
	default:
		return q.Where(
			"(LOWER(employee_no) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(email) LIKE ?)",
			pattern, pattern, pattern, pattern)
	}
}

// applyConditions translates valid advanced filter conditions into WHERE
// clauses. Conditions referencing unknown fields, invalid conditions, and
// operators illegal for the field's type are skipped with a warning rather
// than failing the request.
func applyConditions(q database.SelectQuery, catalog *fieldschema.Catalog, conds []filter.Condition) database.SelectQuery {
	for _, c := range conds {
		if !c.Valid() {
			continue
		}
		field, err := catalog.Field(c.Field)
		if err != nil {
			logger.Warn("skipping filter on unknown field %q", c.Field)
			continue
		}
		if !filter.ValidOperator(field.Type, c.Operator) {
			logger.Warn("skipping filter: operator %s not legal for %s field %q", c.Operator, field.Type, c.Field)
			continue
		}
		q = applyCondition(q, field, c)
	}
	return q
}

func applyCondition(q database.SelectQuery, field fieldschema.Field, c filter.Condition) database.SelectQuery {
	col := field.Key

	switch c.Operator {
	case filter.OpContains:
		return q.Where(fmt.Sprintf("LOWER(%s) LIKE ?", col), likePattern(c, "%", "%"))
	case filter.OpNotContains:
		return q.Where(fmt.Sprintf("LOWER(%s) NOT LIKE ?", col), likePattern(c, "%", "%"))
	case filter.OpStartsWith:
		return q.Where(fmt.Sprintf("LOWER(%s) LIKE ?", col), likePattern(c, "", "%"))
	case filter.OpEndsWith:
		return q.Where(fmt.Sprintf("LOWER(%s) LIKE ?", col), likePattern(c, "%", ""))
	case filter.OpEquals:
		return q.Where(fmt.Sprintf("%s = ?", col), scalarValue(c))
	case filter.OpNotEquals:
		return q.Where(fmt.Sprintf("%s != ?", col), scalarValue(c))
	case filter.OpIsNull:
		return q.Where(fmt.Sprintf("(%s IS NULL OR %s = '')", col, col))
	case filter.OpIsNotNull:
		return q.Where(fmt.Sprintf("(%s IS NOT NULL AND %s != '')", col, col))
	case filter.OpIn:
		if list, ok := c.Value.AsList(); ok {
			expr, args := inClause(col, "IN", list)
			return q.Where(expr, args...)
		}
	case filter.OpNotIn:
		if list, ok := c.Value.AsList(); ok {
			expr, args := inClause(col, "NOT IN", list)
			return q.Where(expr, args...)
		}
	case filter.OpGreaterThan:
		return q.Where(fmt.Sprintf("%s > ?", col), scalarValue(c))
	case filter.OpGreaterThanOrEqual:
		return q.Where(fmt.Sprintf("%s >= ?", col), scalarValue(c))
	case filter.OpLessThan:
		return q.Where(fmt.Sprintf("%s < ?", col), scalarValue(c))
	case filter.OpLessThanOrEqual:
		return q.Where(fmt.Sprintf("%s <= ?", col), scalarValue(c))
	case filter.OpBetween:
		// Inclusive on both sides; either bound may be absent.
		from, to, ok := c.Value.AsRange()
		if !ok {
			break
		}
		if from != "" {
			q = q.Where(fmt.Sprintf("%s >= ?", col), from)
		}
		if to != "" {
			q = q.Where(fmt.Sprintf("%s <= ?", col), to)
		}
		return q
	}

	logger.Warn("filter on %q with operator %s carried an unusable value, skipping", c.Field, c.Operator)
	return q
}

// inClause builds an IN predicate with one placeholder per value, so it works
// the same under either query adapter.
func inClause(col, op string, values []string) (string, []interface{}) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return fmt.Sprintf("%s %s (%s)", col, op, placeholders), args
}

// likePattern lowercases the text value and wraps it with the given
// wildcards.
func likePattern(c filter.Condition, prefix, suffix string) string {
	text, _ := c.Value.AsText()
	return prefix + strings.ToLower(text) + suffix
}

// scalarValue extracts the single comparable value of a condition: a string
// for text/select/date equals-style operators, a bool for boolean fields.
func scalarValue(c filter.Condition) interface{} {
	if b, ok := c.Value.AsBool(); ok {
		return b
	}
	text, _ := c.Value.AsText()
	return text
}

// applySort orders the query, accepting only catalog fields and the known
// timestamp columns. Unknown sort keys fall back to the default order.
func applySort(q database.SelectQuery, catalog *fieldschema.Catalog, state querystate.QueryState) database.SelectQuery {
	column := state.SortBy
	if column != "" && !catalog.Has(column) && !extraSortColumns[column] {
		logger.Warn("ignoring sort on unknown column %q", column)
		column = ""
	}
	if column == "" {
		return q.Order("surname ASC").Order("id ASC")
	}
	direction := "ASC"
	if state.SortOrder == querystate.SortDesc {
		direction = "DESC"
	}
	// Secondary id sort keeps pagination stable across equal keys.
	return q.Order(fmt.Sprintf("%s %s", column, direction)).Order("id ASC")
}
