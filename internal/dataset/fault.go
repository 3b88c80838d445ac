package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Fault is a data-integrity problem isolated to one record.
// Faulty records are either kept with a fallback rendering or dropped,
// never allowed to block the rest of the dataset.
type Fault struct {
	Record  string // "step 3", "sector primary", "country chile"
	Field   string
	Reason  string
	Dropped bool
}

func (f *Fault) Error() string {
	var b strings.Builder
	b.WriteString(f.Record)
	if f.Field != "" {
		b.WriteString(": ")
		b.WriteString(f.Field)
	}
	b.WriteString(": ")
	b.WriteString(f.Reason)
	if f.Dropped {
		b.WriteString(" (record dropped)")
	}
	return b.String()
}

// checkRecord runs the struct-tag rules on v and converts every violation
// into a Fault attributed to record.
func checkRecord(record string, v any) []*Fault {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*Fault{{Record: record, Reason: err.Error()}}
	}
	faults := make([]*Fault, 0, len(verrs))
	for _, e := range verrs {
		faults = append(faults, &Fault{
			Record: record,
			Field:  fieldPath(e.Namespace()),
			Reason: describe(e),
		})
	}
	return faults
}

// fieldPath drops the leading type name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max", "lte":
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "oneof":
		return fmt.Sprintf("%q is not one of [%s]", fmt.Sprint(e.Value()), e.Param())
	default:
		return fmt.Sprintf("validation failed (%s)", e.Tag())
	}
}
