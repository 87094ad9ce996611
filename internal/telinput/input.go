// Package telinput holds the per-input state of a telephone field and wires
// the resolver, the catalog and the search matcher to a host form.
//
// An Input is configured by New and starts resolving after Activate. It is
// not safe for concurrent use.
package telinput

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hightemp/intltel/internal/config"
	"github.com/hightemp/intltel/internal/countries"
	"github.com/hightemp/intltel/internal/logger"
	"github.com/hightemp/intltel/internal/numplan"
	"github.com/hightemp/intltel/internal/resolver"
	"github.com/hightemp/intltel/internal/search"
)

// SelectionState is the mutable state of one input.
type SelectionState struct {
	Selected     countries.Country
	RawInput     string
	LastResolved *numplan.Number
	SearchText   string
}

// Input is one telephone input instance.
type Input struct {
	id     string
	opts   config.Options
	fields []search.Field
	engine *resolver.Engine
	logger *log.Logger

	all       []countries.Country
	preferred []countries.Country

	state     SelectionState
	disabled  bool
	active    bool
	pending   bool
	observers []registered
}

// New configures an input over catalog. The catalog is not modified; when
// placeholders are enabled they are derived on a copy.
func New(catalog []countries.Country, opts config.Options, engine *resolver.Engine, l *log.Logger) (*Input, error) {
	if err := config.ValidateOptions(opts); err != nil {
		return nil, err
	}
	fields, err := search.ParseFields(opts.SearchCountryField)
	if err != nil {
		return nil, err
	}
	if engine == nil {
		engine = resolver.NewEngine(nil, l)
	}

	in := &Input{
		id:     uuid.NewString(),
		opts:   opts,
		fields: fields,
		engine: engine,
	}
	in.logger = logger.OrDiscard(l).With("input", in.id)

	if err := in.configure(catalog); err != nil {
		return nil, err
	}
	return in, nil
}

// configure builds the working catalog and the initial selection: placeholders
// and the preferred list are computed over the full catalog, the OnlyCountries
// restriction comes after, then the first-country pick and the forced ISO.
func (in *Input) configure(catalog []countries.Country) error {
	if len(catalog) == 0 {
		return fmt.Errorf("%w: empty catalog", countries.ErrInvalidCatalog)
	}

	full := catalog
	if in.opts.EnablePlaceholder {
		full = countries.WithPlaceholders(catalog, in.engine.Plan(), in.logger)
	}
	preferred := countries.Project(full, in.opts.PreferredCountries)
	all := countries.RestrictTo(full, in.opts.OnlyCountries)
	if len(all) == 0 {
		return fmt.Errorf("%w: no country left after only-countries filter", countries.ErrInvalidCatalog)
	}
	in.preferred, in.all = preferred, all

	in.state.Selected = in.defaultCountry()
	if in.opts.SelectedCountryISO != "" {
		if c, ok := countries.Find(in.all, in.opts.SelectedCountryISO); ok {
			in.state.Selected = c
		} else {
			in.logger.Debug("selected country not in catalog", "iso2", in.opts.SelectedCountryISO)
		}
	}
	return nil
}

func (in *Input) defaultCountry() countries.Country {
	if in.opts.SelectFirstCountry && len(in.preferred) > 0 {
		return in.preferred[0]
	}
	return in.all[0]
}

// Activate runs the first resolution for a value supplied through SetValue
// before activation. Later SetValue calls resolve immediately.
func (in *Input) Activate() {
	if in.active {
		return
	}
	in.active = true
	if in.pending {
		in.pending = false
		in.resolve()
	}
}

// Active reports whether Activate has run.
func (in *Input) Active() bool {
	return in.active
}

// SetValue injects a value from the host form.
func (in *Input) SetValue(raw string) {
	in.state.RawInput = raw
	if !in.active {
		in.pending = true
		return
	}
	in.resolve()
}

// ChangeNumber handles the user editing the number.
func (in *Input) ChangeNumber(raw string) Change {
	in.state.RawInput = raw
	return in.resolve()
}

func (in *Input) resolve() Change {
	res := in.engine.Resolve(in.state.RawInput, in.state.Selected, in.all, in.opts.EnableAutoCountrySelect)
	in.state.Selected = res.Country
	in.state.LastResolved = res.Number

	c := Change{Kind: ChangeNull}
	if res.Payload != nil {
		c = Change{Kind: ChangeValue, Payload: res.Payload}
	}
	in.emit(c)
	return c
}

// SelectCountry handles an explicit country pick. Nothing is emitted when no
// number has been typed.
func (in *Input) SelectCountry(iso2 string) (*resolver.Payload, error) {
	c, err := countries.Lookup(in.all, iso2)
	if err != nil {
		return nil, err
	}
	in.state.Selected = c

	p := in.engine.SelectCountry(c, in.state.RawInput)
	if p == nil {
		return nil, nil
	}
	in.emit(Change{Kind: ChangeValue, Payload: p})
	return p, nil
}

// SetSelectedCountryISO forces the selection from outside. Unknown codes
// keep the current selection. Once active, an unset change is emitted when no
// number is typed, otherwise the number is resolved again.
func (in *Input) SetSelectedCountryISO(iso2 string) {
	if iso2 == "" || iso2 == in.opts.SelectedCountryISO {
		return
	}
	in.opts.SelectedCountryISO = iso2

	c, ok := countries.Find(in.all, iso2)
	if !ok {
		in.logger.Debug("selected country not in catalog", "iso2", iso2)
		return
	}
	in.state.Selected = c
	if !in.active {
		return
	}
	if in.state.RawInput != "" {
		in.resolve()
		return
	}
	in.emit(Change{Kind: ChangeUnset})
}

// SetPreferredCountries replaces the preferred list, projected over the
// working catalog. An empty list keeps the current one.
func (in *Input) SetPreferredCountries(prefs []string) {
	if len(prefs) == 0 {
		return
	}
	in.opts.PreferredCountries = prefs
	in.preferred = countries.Project(in.all, prefs)
}

// SetCatalog reloads the catalog and reapplies the options. The current
// number is kept and resolved again once the input is active. On error the
// previous catalog and selection are left untouched.
func (in *Input) SetCatalog(catalog []countries.Country) error {
	if err := in.configure(catalog); err != nil {
		return err
	}
	if in.active && in.state.RawInput != "" {
		in.resolve()
	}
	return nil
}

// SearchResult is the outcome of a country search.
type SearchResult struct {
	Matches []countries.Country
	// Target is the country to bring into view; zero when nothing matched.
	Target countries.Country
}

// Search matches text against the working catalog.
func (in *Input) Search(text string) SearchResult {
	in.state.SearchText = text
	res := SearchResult{Matches: search.Match(in.all, in.fields, text)}
	if target, ok := search.ScrollTarget(in.all, in.fields, text); ok {
		res.Target = target
	}
	return res
}

// SetDisabled sets the disabled flag requested by the host.
func (in *Input) SetDisabled(disabled bool) {
	in.disabled = disabled
}

// Disabled reports the disabled flag.
func (in *Input) Disabled() bool {
	return in.disabled
}

// IsValid reports whether the current value passes phone validation. Empty
// input is left to a required-value check.
func (in *Input) IsValid() bool {
	if !in.opts.PhoneValidation || in.state.RawInput == "" {
		return true
	}
	return in.engine.Valid(in.state.RawInput, in.state.Selected)
}

// State returns a copy of the selection state.
func (in *Input) State() SelectionState {
	return in.state
}

// Selected returns the selected country.
func (in *Input) Selected() countries.Country {
	return in.state.Selected
}

// Countries returns the working catalog.
func (in *Input) Countries() []countries.Country {
	return in.all
}

// Preferred returns the preferred countries, in preference order.
func (in *Input) Preferred() []countries.Country {
	return in.preferred
}

// ID returns the input's id, used to correlate log lines.
func (in *Input) ID() string {
	return in.id
}
