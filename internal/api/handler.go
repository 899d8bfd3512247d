package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/service"
)

// ColorResponse is one swatch as the browser renders it.
type ColorResponse struct {
	Hex       model.Color `json:"hex"`
	TextColor model.Color `json:"text_color"`
	Copied    bool        `json:"copied"`
}

// StateResponse is the session state as the browser renders it.
type StateResponse struct {
	SessionID string            `json:"session_id"`
	Palette   []ColorResponse   `json:"palette"`
	Favorites [][]ColorResponse `json:"favorites"`
	Copied    model.Color       `json:"copied,omitempty"`
	Saved     bool              `json:"saved"`
}

// toStateResponse flattens state into what the page needs, so the page
// never re-derives equality or contrast itself.
func toStateResponse(sessionID string, state model.State) StateResponse {
	favorites := make([][]ColorResponse, len(state.Favorites))
	for i, p := range state.Favorites {
		favorites[i] = toColorResponses(p, state)
	}
	return StateResponse{
		SessionID: sessionID,
		Palette:   toColorResponses(state.Palette, state),
		Favorites: favorites,
		Copied:    state.Copied,
		Saved:     state.IsSaved(),
	}
}

func toColorResponses(p model.Palette, state model.State) []ColorResponse {
	out := make([]ColorResponse, len(p))
	for i, c := range p {
		out[i] = ColorResponse{
			Hex:       c,
			TextColor: c.TextColor(),
			Copied:    state.IsCopied(c),
		}
	}
	return out
}

// SaveFavoriteRequest is the optional body of POST /api/v1/favorites.
// Without a palette the currently shown one is saved.
type SaveFavoriteRequest struct {
	Palette []string `json:"palette,omitempty"`
}

// CopyRequest is the body of POST /api/v1/copy.
type CopyRequest struct {
	Color string `json:"color"`
}

// Handler contains all HTTP handlers for the API.
//
// Design: single-user, single-session. Every browser tab talks to the same
// Session, and every change is pushed to all tabs over the websocket.
type Handler struct {
	session *service.Session
}

// NewHandler creates a new handler for the given session.
func NewHandler(session *service.Session) *Handler {
	return &Handler{session: session}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/state", h.GetState)
	mux.HandleFunc("POST /api/v1/palette", h.GeneratePalette)
	mux.HandleFunc("POST /api/v1/favorites", h.SaveFavorite)
	mux.HandleFunc("DELETE /api/v1/favorites/{index}", h.RemoveFavorite)
	mux.HandleFunc("POST /api/v1/copy", h.CopyColor)
	mux.HandleFunc("GET /favicon.svg", h.GetFavicon)

	// Static files (frontend)
	mux.Handle("/", h.StaticHandler())
}

func (h *Handler) respondState(w http.ResponseWriter, state model.State) {
	JSON(w, http.StatusOK, toStateResponse(h.session.ID(), state))
}

// GetState returns the current session state.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, h.session.State())
}

// GeneratePalette replaces the shown palette with a new random one.
func (h *Handler) GeneratePalette(w http.ResponseWriter, r *http.Request) {
	state := h.session.Generate()
	metricPalettesGenerated.Inc()
	h.respondState(w, state)
}

// SaveFavorite saves the shown palette, or the palette in the body.
// Saving a palette that is already a favorite succeeds without change.
func (h *Handler) SaveFavorite(w http.ResponseWriter, r *http.Request) {
	var req SaveFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(w, "Invalid JSON body")
		return
	}

	var state model.State
	if req.Palette == nil {
		state = h.session.SaveCurrent()
	} else {
		p, err := model.NewPalette(req.Palette)
		if err != nil {
			Error(w, err)
			return
		}
		state, err = h.session.SavePalette(p)
		if err != nil {
			Error(w, err)
			return
		}
	}

	metricFavoritesSaved.Inc()
	h.respondState(w, state)
}

// RemoveFavorite removes the favorite at a zero-based index.
// An index past the end leaves favorites unchanged.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		BadRequest(w, "Index must be an integer")
		return
	}

	state := h.session.RemoveFavorite(index)
	metricFavoritesRemoved.Inc()
	h.respondState(w, state)
}

// CopyColor copies a hex code to the clipboard and turns on copied feedback.
func (h *Handler) CopyColor(w http.ResponseWriter, r *http.Request) {
	var req CopyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid JSON body")
		return
	}

	c, err := model.ParseColor(req.Color)
	if err != nil {
		Error(w, err)
		return
	}

	state, err := h.session.Copy(c)
	if err != nil {
		Error(w, err)
		return
	}

	metricColorsCopied.Inc()
	h.respondState(w, state)
}
