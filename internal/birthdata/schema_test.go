package birthdata

import (
	"encoding/json"
	"horoscopus-web/internal/apperr"
	"strings"
	"testing"
	"time"
)

func validInput() Input {
	return Input{
		BirthDate:       "2025-01-01",
		BirthTime:       "14:30",
		Timezone:        "UTC",
		BirthLocationID: "42",
	}
}

func TestSchema_Validate_ValidInput(t *testing.T) {
	res := NewSchema().Validate(validInput())

	if !res.OK() {
		t.Fatalf("Validate() errors = %v, want none", res.Errors())
	}
	want := Values{BirthDate: "2025-01-01", BirthTime: "14:30", Timezone: "UTC", BirthLocationID: 42}
	if res.Values != want {
		t.Errorf("Values = %+v, want %+v", res.Values, want)
	}
	if res.Err() != nil {
		t.Errorf("Err() = %v, want nil", res.Err())
	}
}

func TestSchema_Validate_MissingBirthLocation(t *testing.T) {
	in := validInput()
	in.BirthLocationID = ""

	res := NewSchema().Validate(in)
	if res.OK() {
		t.Fatal("Validate() passed without a birth location")
	}

	got := res.Field(FieldBirthLocationID)
	if got.OK || got.Kind != KindMissing || got.Message != "Выберите место рождения" {
		t.Errorf("birthLocationId result = %+v", got)
	}
	if !apperr.Is(res.Err(), apperr.KindValidation) {
		t.Errorf("Err() = %v, want validation error", res.Err())
	}
	// other fields are unaffected
	if !res.Field(FieldBirthDate).OK || !res.Field(FieldTimezone).OK {
		t.Errorf("unrelated fields failed: %v", res.Errors())
	}
}

func TestSchema_Validate_RequiredStrings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Input)
		field   Field
		message string
	}{
		{"empty date", func(in *Input) { in.BirthDate = "" }, FieldBirthDate, "Укажите дату рождения"},
		{"blank date", func(in *Input) { in.BirthDate = "   " }, FieldBirthDate, "Укажите дату рождения"},
		{"empty time", func(in *Input) { in.BirthTime = "" }, FieldBirthTime, "Укажите время рождения"},
		{"empty timezone", func(in *Input) { in.Timezone = "" }, FieldTimezone, "Выберите часовой пояс"},
		{"blank timezone", func(in *Input) { in.Timezone = "   " }, FieldTimezone, "Выберите часовой пояс"},
	}

	schema := NewSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			got := schema.ValidateField(in, tt.field)
			if got.OK {
				t.Fatalf("ValidateField(%s) passed, want failure", tt.field)
			}
			if got.Message != tt.message {
				t.Errorf("Message = %q, want %q", got.Message, tt.message)
			}
		})
	}
}

func TestSchema_LocationIDCoercion(t *testing.T) {
	tests := []struct {
		raw      LocationID
		wantOK   bool
		wantKind Kind
		wantID   int64
	}{
		{"42", true, KindOK, 42},
		{" 7 ", true, KindOK, 7},
		{"", false, KindMissing, 0},
		{"  ", false, KindMissing, 0},
		{"abc", false, KindInvalidType, 0},
		{"Moscow", false, KindInvalidType, 0},
		{"true", false, KindInvalidType, 0},
		{"NaN", false, KindInvalidType, 0},
		{"0", false, KindInvalid, 0},
		{"-3", false, KindInvalid, 0},
		{"4.5", false, KindInvalid, 0},
		{"42.0", true, KindOK, 42},
		{"1e2", true, KindOK, 100},
		{"-4.0", false, KindInvalid, 0},
		{"Inf", false, KindInvalid, 0},
		{"-Inf", false, KindInvalid, 0},
		{"1e300", false, KindInvalid, 0},
	}

	schema := NewSchema()
	for _, tt := range tests {
		t.Run(string(tt.raw), func(t *testing.T) {
			in := validInput()
			in.BirthLocationID = tt.raw

			res := schema.Validate(in)
			got := res.Field(FieldBirthLocationID)
			if got.OK != tt.wantOK || got.Kind != tt.wantKind {
				t.Errorf("result = %+v, want ok=%v kind=%q", got, tt.wantOK, tt.wantKind)
			}
			if !got.OK && got.Message != "Выберите место рождения" {
				t.Errorf("Message = %q", got.Message)
			}
			if tt.wantOK && res.Values.BirthLocationID != tt.wantID {
				t.Errorf("BirthLocationID = %d, want %d", res.Values.BirthLocationID, tt.wantID)
			}
		})
	}
}

func TestSchema_CurrentLocationIsOptional(t *testing.T) {
	schema := NewSchema()

	in := validInput()
	res := schema.Validate(in)
	if !res.OK() || res.Values.CurrentLocationID != nil {
		t.Errorf("absent current location: ok=%v id=%v", res.OK(), res.Values.CurrentLocationID)
	}

	in.CurrentLocationID = "12"
	res = schema.Validate(in)
	if !res.OK() || res.Values.CurrentLocationID == nil || *res.Values.CurrentLocationID != 12 {
		t.Errorf("current location 12: ok=%v values=%+v", res.OK(), res.Values)
	}

	for _, bad := range []LocationID{"x", "0", "-1"} {
		in.CurrentLocationID = bad
		got := schema.ValidateField(in, FieldCurrentLocationID)
		if got.OK || got.Message != "Выберите текущее место проживания" {
			t.Errorf("current location %q: %+v", bad, got)
		}
	}
}

func TestInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want LocationID
	}{
		{"number", `{"birthLocationId": 42}`, "42"},
		{"string", `{"birthLocationId": "42"}`, "42"},
		{"null", `{"birthLocationId": null}`, ""},
		{"absent", `{}`, ""},
		{"bool", `{"birthLocationId": true}`, "true"},
		{"whole float", `{"birthLocationId": 42.0}`, "42.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in Input
			if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if in.BirthLocationID != tt.want {
				t.Errorf("BirthLocationID = %q, want %q", in.BirthLocationID, tt.want)
			}
		})
	}
}

func TestSchema_WholeFloatFromJSON(t *testing.T) {
	var in Input
	body := `{"birthDate":"2025-01-01","birthTime":"14:30","timezone":"UTC","birthLocationId":42.0,"currentLocationId":"1e2"}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	res := NewSchema().Validate(in)
	if !res.OK() {
		t.Fatalf("Validate() failed: %+v", res.Errors())
	}
	if res.Values.BirthLocationID != 42 || res.Values.CurrentLocationID == nil || *res.Values.CurrentLocationID != 100 {
		t.Errorf("Values = %+v, want ids 42 and 100", res.Values)
	}
}

func TestSchema_TimezoneIsFreeText(t *testing.T) {
	in := validInput()
	in.Timezone = "MSK+3"

	res := NewSchema().Validate(in)
	if !res.Field(FieldTimezone).OK {
		t.Errorf("timezone %q rejected: %+v", in.Timezone, res.Field(FieldTimezone))
	}
	// only the API submitter needs a loadable zone
	if _, err := res.Values.BirthDatetime(); err == nil {
		t.Error("BirthDatetime() with unknown zone expected error")
	}
}

func TestResult_FieldsInDisplayOrder(t *testing.T) {
	res := NewSchema().Validate(Input{})
	if len(res.Fields) != len(Fields) {
		t.Fatalf("len(Fields) = %d, want %d", len(res.Fields), len(Fields))
	}
	for i, f := range Fields {
		if res.Fields[i].Field != f {
			t.Errorf("Fields[%d] = %s, want %s", i, res.Fields[i].Field, f)
		}
	}
	// optional field passes even on an empty form
	if !res.Field(FieldCurrentLocationID).OK {
		t.Error("currentLocationId failed on empty input")
	}
	if n := len(res.Errors()); n != 4 {
		t.Errorf("len(Errors()) = %d, want 4", n)
	}
}

func TestValues_BirthDatetime(t *testing.T) {
	v := Values{BirthDate: "2025-01-01", BirthTime: "14:30", Timezone: "Europe/Moscow"}
	got, err := v.BirthDatetime()
	if err != nil {
		t.Fatalf("BirthDatetime() error = %v", err)
	}
	want := time.Date(2025, 1, 1, 11, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("BirthDatetime() = %v, want %v", got.UTC(), want)
	}

	v.BirthTime = "14:30:15"
	if got, err := v.BirthDatetime(); err != nil || got.Second() != 15 {
		t.Errorf("BirthDatetime() with seconds = %v, %v", got, err)
	}

	v.BirthDate = "01.01.2025"
	if _, err := v.BirthDatetime(); err == nil || !strings.Contains(err.Error(), "cannot parse") {
		t.Errorf("BirthDatetime() error = %v, want parse error", err)
	}
}

func TestParseField(t *testing.T) {
	if f, ok := ParseField("birthLocationId"); !ok || f != FieldBirthLocationID {
		t.Errorf("ParseField(birthLocationId) = %q, %v", f, ok)
	}
	if _, ok := ParseField("favouriteColour"); ok {
		t.Error("ParseField(unknown) = ok")
	}
}
