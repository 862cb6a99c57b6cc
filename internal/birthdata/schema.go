package birthdata

import (
	"errors"
	"horoscopus-web/internal/apperr"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field names match the form and JSON keys
type Field string

const (
	FieldBirthDate         Field = "birthDate"
	FieldBirthTime         Field = "birthTime"
	FieldTimezone          Field = "timezone"
	FieldBirthLocationID   Field = "birthLocationId"
	FieldCurrentLocationID Field = "currentLocationId"
)

// Fields in display order
var Fields = []Field{
	FieldBirthDate,
	FieldBirthTime,
	FieldTimezone,
	FieldBirthLocationID,
	FieldCurrentLocationID,
}

func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Kind classifies a field failure
type Kind string

const (
	KindOK          Kind = ""
	KindMissing     Kind = "missing"
	KindInvalidType Kind = "invalid_type"
	KindInvalid     Kind = "invalid"
)

var messages = map[Field]string{
	FieldBirthDate:         "Укажите дату рождения",
	FieldBirthTime:         "Укажите время рождения",
	FieldTimezone:          "Выберите часовой пояс",
	FieldBirthLocationID:   "Выберите место рождения",
	FieldCurrentLocationID: "Выберите текущее место проживания",
}

// Message returns the user-facing message for a failing field
func Message(f Field) string {
	return messages[f]
}

// FieldResult is the outcome for one field: OK, or a Kind and a message
type FieldResult struct {
	Field   Field  `json:"field"`
	OK      bool   `json:"ok"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

func pass(f Field) FieldResult {
	return FieldResult{Field: f, OK: true}
}

func fail(f Field, kind Kind) FieldResult {
	return FieldResult{Field: f, Kind: kind, Message: messages[f]}
}

// Result holds a result for every field. Values is only meaningful when OK.
type Result struct {
	Fields []FieldResult `json:"fields"`
	Values Values        `json:"-"`
}

func (r Result) OK() bool {
	for _, f := range r.Fields {
		if !f.OK {
			return false
		}
	}
	return true
}

func (r Result) Field(f Field) FieldResult {
	for _, fr := range r.Fields {
		if fr.Field == f {
			return fr
		}
	}
	return pass(f)
}

// Errors maps failing fields to their messages
func (r Result) Errors() map[Field]string {
	errs := make(map[Field]string)
	for _, f := range r.Fields {
		if !f.OK {
			errs[f.Field] = f.Message
		}
	}
	return errs
}

// Err returns a validation error carrying the per-field messages, or nil
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return apperr.Validation("birth data is invalid").WithDetails(r.Errors())
}

// coerced is what the declarative rules run against
type coerced struct {
	BirthDate         string `json:"birthDate" validate:"required"`
	BirthTime         string `json:"birthTime" validate:"required"`
	Timezone          string `json:"timezone" validate:"required"`
	BirthLocationID   int64  `json:"birthLocationId" validate:"gt=0"`
	CurrentLocationID *int64 `json:"currentLocationId" validate:"omitempty,gt=0"`
}

// Schema validates birth data input
type Schema struct {
	v *validator.Validate
}

func NewSchema() *Schema {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Schema{v: v}
}

// Validate checks every field and never panics on malformed input
func (s *Schema) Validate(in Input) Result {
	results := make(map[Field]FieldResult, len(Fields))
	c := coerced{
		BirthDate: strings.TrimSpace(in.BirthDate),
		BirthTime: strings.TrimSpace(in.BirthTime),
		Timezone:  strings.TrimSpace(in.Timezone),
	}

	// coercion failures are final; the rules only see values that coerced
	birthID, kind := CoerceLocationID(in.BirthLocationID)
	if kind != KindOK {
		results[FieldBirthLocationID] = fail(FieldBirthLocationID, kind)
	}
	c.BirthLocationID = birthID

	if currentID, kind := CoerceLocationID(in.CurrentLocationID); kind == KindOK {
		c.CurrentLocationID = &currentID
	} else if kind != KindMissing {
		results[FieldCurrentLocationID] = fail(FieldCurrentLocationID, kind)
	}

	if err := s.v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			// only reachable on a programming error in the rules
			for _, f := range Fields {
				results[f] = fail(f, KindInvalid)
			}
		}
		for _, fe := range verrs {
			f := Field(fe.Field())
			if _, done := results[f]; done {
				continue
			}
			results[f] = fail(f, kindForTag(fe.Tag()))
		}
	}

	out := Result{Fields: make([]FieldResult, 0, len(Fields))}
	for _, f := range Fields {
		if r, ok := results[f]; ok {
			out.Fields = append(out.Fields, r)
			continue
		}
		out.Fields = append(out.Fields, pass(f))
	}
	if out.OK() {
		out.Values = Values{
			BirthDate:         c.BirthDate,
			BirthTime:         c.BirthTime,
			Timezone:          c.Timezone,
			BirthLocationID:   c.BirthLocationID,
			CurrentLocationID: c.CurrentLocationID,
		}
	}
	return out
}

// ValidateField checks a single field, as on blur
func (s *Schema) ValidateField(in Input, f Field) FieldResult {
	return s.Validate(in).Field(f)
}

func kindForTag(tag string) Kind {
	if tag == "required" {
		return KindMissing
	}
	return KindInvalid
}
