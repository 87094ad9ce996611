// Package httpapi exposes number resolution over HTTP.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/hightemp/intltel/internal/config"
	"github.com/hightemp/intltel/internal/countries"
	"github.com/hightemp/intltel/internal/logger"
	"github.com/hightemp/intltel/internal/resolver"
	"github.com/hightemp/intltel/internal/search"
	"github.com/hightemp/intltel/internal/telinput"
)

// Handler serves the resolution endpoints. Each request works on its own
// input configured from the shared catalog and options.
type Handler struct {
	catalog []countries.Country
	opts    config.Options
	engine  *resolver.Engine
	val     *validator.Validate
	logger  *log.Logger
}

// New creates a handler. Placeholders are derived once here, not per request.
func New(catalog []countries.Country, opts config.Options, engine *resolver.Engine, l *log.Logger) (*Handler, error) {
	l = logger.OrDiscard(l)
	if engine == nil {
		engine = resolver.NewEngine(nil, l)
	}
	if opts.EnablePlaceholder {
		catalog = countries.WithPlaceholders(catalog, engine.Plan(), l)
		opts.EnablePlaceholder = false
	}
	h := &Handler{
		catalog: catalog,
		opts:    opts,
		engine:  engine,
		val:     validator.New(),
		logger:  l,
	}
	if _, err := h.newInput(nil); err != nil {
		return nil, err
	}
	return h, nil
}

// RegisterRoutes mounts the API under rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/countries", h.ListCountries)
	rg.GET("/countries/search", h.SearchCountries)
	rg.POST("/resolve", h.Resolve)
	rg.POST("/select", h.Select)
}

func (h *Handler) newInput(mutate func(*config.Options)) (*telinput.Input, error) {
	opts := h.opts
	if mutate != nil {
		mutate(&opts)
	}
	in, err := telinput.New(h.catalog, opts, h.engine, h.logger)
	if err != nil {
		return nil, err
	}
	in.Activate()
	return in, nil
}

// ListCountries returns the working catalog.
func (h *Handler) ListCountries(c *gin.Context) {
	in, err := h.newInput(nil)
	if handleError(c, err) {
		return
	}
	c.JSON(http.StatusOK, CountriesResponse{
		Preferred: in.Preferred(),
		Countries: in.Countries(),
		Selected:  in.Selected(),
	})
}

// SearchCountries matches the query against the configured fields, or the
// single field given in the request.
func (h *Handler) SearchCountries(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	var field search.Field
	if req.Field != "" {
		f, err := search.ParseField(req.Field)
		if err != nil {
			writeError(c, http.StatusBadRequest, msgValidationFailed, err.Error())
			return
		}
		field = f
	}

	in, err := h.newInput(func(o *config.Options) {
		if field != "" {
			o.SearchCountryField = []string{string(field)}
		}
	})
	if handleError(c, err) {
		return
	}

	res := in.Search(req.Q)
	resp := SearchResponse{Matches: res.Matches}
	if resp.Matches == nil {
		resp.Matches = []countries.Country{}
	}
	if !res.Target.IsZero() {
		resp.Target = &res.Target
	}
	c.JSON(http.StatusOK, resp)
}

// Resolve resolves a typed number, switching country when auto detection
// finds a better match.
func (h *Handler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	in, err := h.newInput(func(o *config.Options) {
		if req.AutoDetect != nil {
			o.EnableAutoCountrySelect = *req.AutoDetect
		}
	})
	if handleError(c, err) {
		return
	}
	if req.Country != "" {
		if _, err := countries.Lookup(in.Countries(), req.Country); handleError(c, err) {
			return
		}
		in.SetSelectedCountryISO(strings.ToLower(req.Country))
	}

	change := in.ChangeNumber(strings.TrimSpace(req.Number))
	h.logger.Debug("resolved", "input", in.ID(), "country", in.Selected().ISO2, "change", change.Kind)

	c.JSON(http.StatusOK, ResolveResponse{
		Country: in.Selected(),
		Payload: change.Payload,
		Valid:   in.IsValid(),
		Change:  change.Kind.String(),
	})
}

// Select applies an explicit country pick to a typed number. The pick is
// kept even when the number belongs elsewhere.
func (h *Handler) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	in, err := h.newInput(nil)
	if handleError(c, err) {
		return
	}
	in.ChangeNumber(strings.TrimSpace(req.Number))
	payload, err := in.SelectCountry(req.Country)
	if handleError(c, err) {
		return
	}

	c.JSON(http.StatusOK, SelectResponse{
		Country: in.Selected(),
		Payload: payload,
		Valid:   in.IsValid(),
	})
}
