// Package diagnostic provides structured warnings collected while
// normalizing an offset schema and resolving table bases.
//
// Key capabilities:
//   - missing stride / missing base-pointer warnings
//   - super-type override reports
//   - aggregation into a single report instead of one message per problem
package diagnostic
