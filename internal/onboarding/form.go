// Package onboarding owns the birth data form of a browser session: field
// values, the two location autocomplete inputs, validation state and the
// submit guard.
package onboarding

import (
	"context"
	"horoscopus-web/internal/apperr"
	"horoscopus-web/internal/autocomplete"
	"horoscopus-web/internal/birthdata"
	"horoscopus-web/internal/types"
	"log/slog"
	"strconv"
	"sync"
)

// LocationField names one of the two location inputs
type LocationField string

const (
	LocationBirth   LocationField = "birth"
	LocationCurrent LocationField = "current"
)

func ParseLocationField(s string) (LocationField, bool) {
	switch LocationField(s) {
	case LocationBirth, LocationCurrent:
		return LocationField(s), true
	default:
		return "", false
	}
}

// idField maps a location input to the form value it sets
func (l LocationField) idField() birthdata.Field {
	if l == LocationBirth {
		return birthdata.FieldBirthLocationID
	}
	return birthdata.FieldCurrentLocationID
}

type locationState struct {
	input      *autocomplete.Field
	visible    []types.LocationSuggestion
	visibleGen uint64
	selected   *types.LocationSuggestion
}

// Form is the onboarding form of one session. Location ids are only ever
// set by picking one of the suggestions the field is currently showing.
type Form struct {
	schema *birthdata.Schema
	logger *slog.Logger

	mu        sync.Mutex
	input     birthdata.Input
	errors    map[birthdata.Field]string
	locations map[LocationField]*locationState
	busy      bool
}

func NewForm(client *autocomplete.Client, schema *birthdata.Schema, logger *slog.Logger) *Form {
	return &Form{
		schema: schema,
		logger: logger.With("component", "onboarding-form"),
		input:  birthdata.Input{Timezone: birthdata.DefaultTimezone},
		errors: make(map[birthdata.Field]string),
		locations: map[LocationField]*locationState{
			LocationBirth:   {input: autocomplete.NewField(string(LocationBirth), client, 0, logger)},
			LocationCurrent: {input: autocomplete.NewField(string(LocationCurrent), client, 0, logger)},
		},
	}
}

// Search handles a keystroke in a location input. Typing discards any
// previous selection. The bool is false when a newer keystroke superseded
// this one, in which case the caller should not render the result.
func (f *Form) Search(ctx context.Context, field LocationField, query string) (FieldView, bool) {
	loc := f.locations[field]

	f.mu.Lock()
	if loc.selected != nil {
		loc.selected = nil
		f.setLocationID(field, "")
	}
	f.mu.Unlock()

	snap, current := loc.input.Update(ctx, query)

	f.mu.Lock()
	defer f.mu.Unlock()
	if current && snap.Generation >= loc.visibleGen {
		loc.visible = VisibleSuggestions(snap.Suggestions)
		loc.visibleGen = snap.Generation
	}
	return f.fieldViewLocked(field), current
}

// Select picks a displayed suggestion by id. The query text becomes the
// suggestion's name and the list closes.
func (f *Form) Select(field LocationField, id int64) (types.LocationSuggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	loc := f.locations[field]
	var picked *types.LocationSuggestion
	if loc.input.Snapshot().Generation != loc.visibleGen {
		// a newer query is in flight and the old list is no longer shown
		return types.LocationSuggestion{}, apperr.BadRequest("suggestions are out of date").WithOp("onboarding.Select")
	}
	for i := range loc.visible {
		if loc.visible[i].ID == id {
			s := loc.visible[i]
			picked = &s
			break
		}
	}
	if picked == nil {
		return types.LocationSuggestion{}, apperr.BadRequest("location is not among the displayed suggestions").WithOp("onboarding.Select")
	}

	loc.selected = picked
	loc.visible = nil
	snap := loc.input.SetText(picked.Name)
	loc.visibleGen = snap.Generation
	f.setLocationID(field, strconv.FormatInt(picked.ID, 10))
	f.validateLocked(field.idField())

	f.logger.Debug("location selected", "field", field, "id", picked.ID)
	return *picked, nil
}

// SetValue updates a plain text field. Location ids cannot be set this way.
func (f *Form) SetValue(name birthdata.Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case birthdata.FieldBirthDate:
		f.input.BirthDate = value
	case birthdata.FieldBirthTime:
		f.input.BirthTime = value
	case birthdata.FieldTimezone:
		f.input.Timezone = value
	default:
		return apperr.BadRequest("field cannot be set directly: " + string(name))
	}
	return nil
}

// Blur validates a single field and records its error, if any
func (f *Form) Blur(name birthdata.Field) birthdata.FieldResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked(name)
}

// Validate checks every field and records all errors
func (f *Form) Validate() birthdata.Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := f.schema.Validate(f.input)
	for _, fr := range res.Fields {
		f.recordLocked(fr)
	}
	return res
}

// Busy reports whether a submission is in flight
func (f *Form) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func (f *Form) beginSubmit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return apperr.Conflict("submission already in progress").WithOp("onboarding.Submit")
	}
	f.busy = true
	return nil
}

func (f *Form) endSubmit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
}

// View returns a snapshot for rendering
func (f *Form) View() FormView {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		errs[string(k)] = v
	}
	v := FormView{
		BirthDate: f.input.BirthDate,
		BirthTime: f.input.BirthTime,
		Timezone:  f.input.Timezone,
		Errors:    errs,
		Birth:     f.fieldViewLocked(LocationBirth),
		Current:   f.fieldViewLocked(LocationCurrent),
		Busy:      f.busy,
	}
	v.SubmitDisabled = v.Busy || v.Birth.Loading || v.Current.Loading
	return v
}

func (f *Form) validateLocked(name birthdata.Field) birthdata.FieldResult {
	fr := f.schema.ValidateField(f.input, name)
	f.recordLocked(fr)
	return fr
}

func (f *Form) recordLocked(fr birthdata.FieldResult) {
	if fr.OK {
		delete(f.errors, fr.Field)
		return
	}
	f.errors[fr.Field] = fr.Message
}

func (f *Form) setLocationID(field LocationField, id string) {
	if field == LocationBirth {
		f.input.BirthLocationID = birthdata.LocationID(id)
		return
	}
	f.input.CurrentLocationID = birthdata.LocationID(id)
}

func (f *Form) fieldViewLocked(field LocationField) FieldView {
	loc := f.locations[field]
	snap := loc.input.Snapshot()
	fv := FieldView{
		Name:    field,
		Query:   snap.Query,
		Loading: snap.Loading(),
		Error:   f.errors[field.idField()],
	}
	// suggestions are only shown for the query they answer
	if snap.State == autocomplete.StateReady && snap.Generation == loc.visibleGen {
		fv.Suggestions = suggestionViews(loc.visible)
		fv.Searched = true
	}
	if loc.selected != nil {
		fv.SelectedID = loc.selected.ID
	}
	return fv
}

// FieldView is the render state of one location input
type FieldView struct {
	Name        LocationField
	Query       string
	Loading     bool
	Searched    bool
	Suggestions []SuggestionView
	SelectedID  int64
	Error       string
}

// FormView is the render state of the whole form
type FormView struct {
	BirthDate      string
	BirthTime      string
	Timezone       string
	Errors         map[string]string
	Birth          FieldView
	Current        FieldView
	Busy           bool
	SubmitDisabled bool
}
