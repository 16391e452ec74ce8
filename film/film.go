package film

import (
	"strings"

	"bechdel/errs"
)

var (
	ErrInvalidTitle   = errs.Errorf(errs.EINVALID, "film: invalid title")
	ErrInvalidOutcome = errs.Errorf(errs.EINVALID, "film: invalid bechdel outcome")
	ErrNoFilmsForYear = errs.Errorf(errs.ENOTFOUND, "film: no films for year")
)

// Outcome is the binary Bechdel test result of a film.
type Outcome string

const (
	OutcomePass Outcome = "PASS"
	OutcomeFail Outcome = "FAIL"
)

// ParseOutcome accepts PASS or FAIL in any case.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToUpper(strings.TrimSpace(s))); o {
	case OutcomePass, OutcomeFail:
		return o, nil
	}
	return "", ErrInvalidOutcome
}

// Film is one row of the dataset. The money and code columns are carried
// through untouched; nil means the source had no value.
type Film struct {
	Year      int     `json:"year" yaml:"year"`
	IMDB      string  `json:"imdb" yaml:"imdb"`
	Title     string  `json:"title" yaml:"title"`
	Test      string  `json:"test" yaml:"test"`
	CleanTest string  `json:"cleanTest" yaml:"clean_test"`
	Binary    Outcome `json:"binary" yaml:"binary"`

	Budget             *int64 `json:"budget,omitempty" yaml:"budget,omitempty"`
	DomesticGross      *int64 `json:"domGross,omitempty" yaml:"domgross,omitempty"`
	InternationalGross *int64 `json:"intGross,omitempty" yaml:"intgross,omitempty"`
	Code               string `json:"code,omitempty" yaml:"code,omitempty"`

	Budget2013             *int64 `json:"budget2013,omitempty" yaml:"budget_2013,omitempty"`
	DomesticGross2013      *int64 `json:"domGross2013,omitempty" yaml:"domgross_2013,omitempty"`
	InternationalGross2013 *int64 `json:"intGross2013,omitempty" yaml:"intgross_2013,omitempty"`

	PeriodCode *int `json:"periodCode,omitempty" yaml:"period_code,omitempty"`
	DecadeCode *int `json:"decadeCode,omitempty" yaml:"decade_code,omitempty"`
}

func (f Film) Passed() bool {
	return f.Binary == OutcomePass
}

func (f Film) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrInvalidTitle
	}

	if _, err := ParseOutcome(string(f.Binary)); err != nil {
		return err
	}

	return nil
}

// FilmResult pairs the number of matching films with the requested window
// of them. A nil Results means nothing matched; an empty slice is a valid,
// empty page.
type FilmResult struct {
	TotalCount int    `json:"totalCount"`
	Results    []Film `json:"results"`
}

func (r FilmResult) Found() bool {
	return r.Results != nil
}
