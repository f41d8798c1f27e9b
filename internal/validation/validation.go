// Package validation checks form drafts against declarative schemas and turns
// them into typed records that are safe to submit.
package validation

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// MaxRequestedStock is the largest quantity a single restock line may ask for.
const MaxRequestedStock = math.MaxInt32

// Result is the outcome of checking a draft. Errors is keyed by the JSON name
// of the field, nested fields as items[0].requested_stock.
type Result struct {
	Valid  bool
	Errors map[string][]string
}

// ValidationError carries field-scoped messages for a rejected draft.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the form-level rules registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	// Errors from registration only happen for empty tags or nil funcs.
	_ = v.RegisterValidation("numberlike", isNumber)
	_ = v.RegisterValidation("gt0", isPositive)
	_ = v.RegisterValidation("whole", isWhole)
	_ = v.RegisterValidation("stockbound", withinStockBound)

	return &Validator{validate: v}
}

// Check validates draft and reports every failing field. It has no side effects.
func (v *Validator) Check(draft interface{}) Result {
	err := v.validate.Struct(draft)
	if err == nil {
		return Result{Valid: true}
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{Errors: map[string][]string{"_": {err.Error()}}}
	}

	errs := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := fieldKey(fe.Namespace())
		errs[key] = append(errs[key], message(fe))
	}
	return Result{Errors: errs}
}

// Err returns a *ValidationError for a failed Result, nil otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Fields: r.Errors}
}

// fieldKey drops the root struct name from a validator namespace.
func fieldKey(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "numberlike":
		return "must be a number"
	case "gt0":
		return "must be greater than 0"
	case "whole":
		return "must be a whole number"
	case "stockbound":
		return fmt.Sprintf("must be at most %d", MaxRequestedStock)
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid id"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

func toNumber(s string) (float64, bool) {
	f, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isNumber(fl validator.FieldLevel) bool {
	_, ok := toNumber(fl.Field().String())
	return ok
}

func isPositive(fl validator.FieldLevel) bool {
	f, ok := toNumber(fl.Field().String())
	return ok && f > 0
}

func isWhole(fl validator.FieldLevel) bool {
	f, ok := toNumber(fl.Field().String())
	return ok && f == math.Trunc(f)
}

func withinStockBound(fl validator.FieldLevel) bool {
	f, ok := toNumber(fl.Field().String())
	return ok && f <= MaxRequestedStock
}
