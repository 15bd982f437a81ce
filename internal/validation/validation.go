// Package validation wires go-playground/validator for the tutor and
// booking forms. Validation errors are returned as a map keyed by the
// JSON field name so the dashboard can surface them inline next to
// each input.
package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/rainditya/tutor-backoffice/internal/model"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator
)

// custom validation tags
const (
	subjectTag      = "subject"
	calendarDateTag = "calendardate"
	notPastTag      = "notpast"
	clockTag        = "clock"
	afterStartTag   = "after_start"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Report errors under JSON field names, not Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(subjectTag, validateSubject)
	_ = Validate.RegisterValidation(calendarDateTag, validateCalendarDate)
	_ = Validate.RegisterValidation(notPastTag, validateNotPast)
	_ = Validate.RegisterValidation(clockTag, validateClock)
	Validate.RegisterStructValidation(bookingInputStructValidation, model.BookingInput{})
	Validate.RegisterStructValidation(bookingPatchStructValidation, model.BookingPatch{})

	registerCustomTranslations(subjectTag, calendarDateTag, notPastTag, clockTag, afterStartTag)
}

// Check validates a form payload and returns a field-keyed error map,
// or nil when the payload is valid. Only the first error per field is
// reported, matching the single-message-per-field error map the forms
// render.
func Check(payload any) map[string]string {
	err := Validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fe.Translate(Translator)
		}
	}
	return out
}

func registerCustomTranslations(tags ...string) {
	// The default translator is already registered, so the register
	// step is a noop; only the translate step matters here.
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustomErrs)
	}
}

func translateCustomErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case subjectTag:
		return "must be one of the registered subjects"
	case calendarDateTag:
		return "must be a date in YYYY-MM-DD form"
	case notPastTag:
		return "date must not be in the past"
	case clockTag:
		return "must be a time in HH:MM form"
	case afterStartTag:
		return "end time must be after start time"
	default:
		return ""
	}
}

func validateSubject(fl validator.FieldLevel) bool {
	return model.ValidSubject(fl.Field().String())
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

// validateNotPast accepts today and later, by calendar-day string
// comparison. Runs after calendardate, so the value parses.
func validateNotPast(fl validator.FieldLevel) bool {
	return fl.Field().String() >= time.Now().Format(dateLayout)
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := time.Parse(clockLayout, fl.Field().String())
	return err == nil
}

// bookingInputStructValidation enforces the cross-field rule: end time
// strictly greater than start time, compared as strings. Equal times
// are rejected; one minute later is accepted.
func bookingInputStructValidation(sl validator.StructLevel) {
	in := sl.Current().Interface().(model.BookingInput)
	if in.StartTime != "" && in.EndTime != "" && in.EndTime <= in.StartTime {
		sl.ReportError(in.EndTime, "endTime", "EndTime", afterStartTag, "")
	}
}

func bookingPatchStructValidation(sl validator.StructLevel) {
	p := sl.Current().Interface().(model.BookingPatch)
	if p.StartTime != nil && p.EndTime != nil && *p.EndTime <= *p.StartTime {
		sl.ReportError(*p.EndTime, "endTime", "EndTime", afterStartTag, "")
	}
}
