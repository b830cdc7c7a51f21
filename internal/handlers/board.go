package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/input"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/session"
)

type BoardHandler struct {
	logger   *slog.Logger
	registry *session.Registry
	defaults mines.GameParams
	maxCells int
	ws       *config.WebSocket
}

func NewBoardHandler(
	logger *slog.Logger,
	registry *session.Registry,
	defaults mines.GameParams,
	maxCells int,
	ws *config.WebSocket,
) *BoardHandler {
	return &BoardHandler{
		logger:   logger,
		registry: registry,
		defaults: defaults,
		maxCells: maxCells,
		ws:       ws,
	}
}

var ErrBoardTooLarge = errors.New("board too large")

func (h BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	params, err := ParseNewBoardDTO(r.URL.Query(), h.defaults)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if h.maxCells > 0 && params.Cells() > h.maxCells {
		sendError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: %d cells, at most %d allowed", ErrBoardTooLarge, params.Cells(), h.maxCells))
		return
	}

	s, err := h.registry.Create(params)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	sendJSONStatus(w, h.logger, http.StatusCreated, NewSessionDTO(s.Do(h.registry.Now(), nil)))
}

// lookup resolves the {id} path value, answering 400 or 404 itself when it
// cannot.
func (h BoardHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid board id: %w", err))
		return nil, false
	}
	s, err := h.registry.Get(id)
	if err != nil {
		sendError(w, h.logger, http.StatusNotFound, err)
		return nil, false
	}
	return s, true
}

func (h BoardHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, NewSessionDTO(s.Do(h.registry.Now(), nil)))
}

func (h BoardHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	move, err := ParseMove(dto.Move)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var moveErr error
	st := s.Do(h.registry.Now(), func(b *mines.Board, _ *input.Adapter) {
		if moveErr = checkBounds(b.Params(), dto.Row, dto.Col); moveErr != nil {
			return
		}
		switch move {
		case Reveal:
			b.Reveal(dto.Row, dto.Col)
		case Flag:
			b.ToggleFlag(dto.Row, dto.Col)
		}
	})
	if moveErr != nil {
		sendError(w, h.logger, http.StatusBadRequest, moveErr)
		return
	}

	sendJSONOrLog(w, h.logger, NewSessionDTO(st))
}

// Pointer feeds a raw button press at a surface offset through the board's
// input adapter. Presses off the board are ignored.
func (h BoardHandler) Pointer(w http.ResponseWriter, r *http.Request) {
	p, err := ParsePointerDTO(r.URL.Query())
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	st := s.Do(h.registry.Now(), func(_ *mines.Board, a *input.Adapter) {
		a.PointerDown(p)
	})
	sendJSONOrLog(w, h.logger, NewSessionDTO(st))
}

func (h BoardHandler) Restart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	st := s.Do(h.registry.Now(), func(b *mines.Board, _ *input.Adapter) {
		b.NewGame()
	})
	sendJSONOrLog(w, h.logger, NewSessionDTO(st))
}

func (h BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := h.registry.Delete(s.ID); err != nil {
		sendError(w, h.logger, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
