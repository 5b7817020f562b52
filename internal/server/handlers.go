package server

import (
	"net/http"

	"github.com/rshade/producttable/internal/engine"
	"github.com/rshade/producttable/internal/logging"
	"github.com/rshade/producttable/internal/pagination"
	"github.com/rshade/producttable/internal/render"
)

// StateFromRequest builds a ViewState from the query parameters. Invalid
// values fall back to defaults; a missing size uses defaultSize.
func StateFromRequest(r *http.Request, defaultSize int) engine.ViewState {
	q := r.URL.Query()
	state := engine.NewViewState()

	state.Query = q.Get(render.ParamQuery)

	state.PageSize = defaultSize
	if size := q.Get(render.ParamPageSize); size != "" {
		state.PageSize = pagination.ParsePageSize(size)
	}
	if state.PageSize <= 0 {
		state.PageSize = pagination.DefaultPageSize
	}

	if field, err := engine.ParseSortField(q.Get(render.ParamSort)); err == nil {
		state.SetSort(field, engine.ParseSortDirection(q.Get(render.ParamDir)))
	}

	if page := q.Get(render.ParamPage); page != "" {
		state.SetPage(pagination.ParsePage(page))
	}
	return state
}

func frameFor(r *http.Request, source ProductSource, opts Options) render.Frame {
	state := StateFromRequest(r, opts.PageSize)
	return render.Frame{
		State:           state,
		Output:          engine.Compute(source.Products(), state),
		PageSizeOptions: opts.PageSizeOptions,
		Placeholder:     opts.Placeholder,
		Location:        opts.Location,
		Loading:         !source.Loaded(),
	}
}

// HandleTable returns an http.HandlerFunc that renders the HTML table.
func HandleTable(source ProductSource, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frame := frameFor(r, source, opts)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render.RenderHTML(w, frame); err != nil {
			logger := logging.FromContext(r.Context())
			logger.Error().
				Str("operation", "render_html").
				Err(err).
				Msg("cannot render table")
		}
	}
}

// HandleProducts returns an http.HandlerFunc that writes the current frame as
// JSON.
func HandleProducts(source ProductSource, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frame := frameFor(r, source, opts)

		w.Header().Set("Content-Type", "application/json")
		if err := render.RenderJSON(w, frame); err != nil {
			logger := logging.FromContext(r.Context())
			logger.Error().
				Str("operation", "render_json").
				Err(err).
				Msg("cannot encode products")
		}
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Loaded   bool   `json:"loaded"`
	Products int    `json:"products"`
}

// HandleHealth reports whether the catalog has been loaded.
func HandleHealth(source ProductSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, healthResponse{
			Status:   "ok",
			Loaded:   source.Loaded(),
			Products: len(source.Products()),
		}, http.StatusOK)
	}
}
