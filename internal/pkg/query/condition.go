package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// eqCondition implements equality comparison (field = value).
type eqCondition struct {
	field string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "active") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &eqCondition{
		field: field,
		value: value,
	}
}

// SQL generates the SQL fragment for equality comparison.
func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s = @%s", c.field, paramName)
	params := map[string]interface{}{
		paramName: c.value,
	}
	return sql, params
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("discount_percent") generates "discount_percent IS NULL"
// Note: This is a placeholder for future extension.
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

// isNullCondition implements IS NULL comparison.
type isNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NULL comparison.
func (c *isNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NULL", c.field)
	return sql, map[string]interface{}{}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
// Example: IsNotNull("discount_percent") generates "discount_percent IS NOT NULL"
// Note: This is a placeholder for future extension.
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NOT NULL", c.field)
	return sql, map[string]interface{}{}
}

// Neq creates a WHERE condition for inequality comparison.
// Example: Neq("product_id", 7) generates "product_id != @p0"
func Neq(field string, value interface{}) Condition {
	return &neqCondition{
		field: field,
		value: value,
	}
}

// neqCondition implements inequality comparison (field != value).
type neqCondition struct {
	field string
	value interface{}
}

// SQL generates the SQL fragment for inequality comparison.
func (c *neqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s != @%s", c.field, paramName)
	params := map[string]interface{}{
		paramName: c.value,
	}
	return sql, params
}

// Like creates a case-insensitive substring match condition.
// Example: Like("name", "shirt") generates "LOWER(name) LIKE @p0"
// with the parameter bound to "%shirt%".
func Like(field, substring string) Condition {
	return &likeCondition{
		field:     field,
		substring: substring,
	}
}

// likeCondition implements case-insensitive substring matching.
type likeCondition struct {
	field     string
	substring string
}

// SQL generates the SQL fragment for substring matching.
func (c *likeCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("LOWER(%s) LIKE @%s", c.field, paramName)
	params := map[string]interface{}{
		paramName: "%" + strings.ToLower(c.substring) + "%",
	}
	return sql, params
}

// Or combines conditions with OR logic inside a single parenthesized group.
// Example: Or(Like("name", q), Like("description", q))
func Or(conditions ...Condition) Condition {
	return &orCondition{conditions: conditions}
}

// orCondition implements a parenthesized OR group.
type orCondition struct {
	conditions []Condition
}

// SQL generates the SQL fragment for the OR group.
func (c *orCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	fragments := make([]string, 0, len(c.conditions))
	params := make(map[string]interface{})

	for _, cond := range c.conditions {
		fragment, condParams := cond.SQL(paramIndex)
		fragments = append(fragments, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}

	return "(" + strings.Join(fragments, " OR ") + ")", params
}
