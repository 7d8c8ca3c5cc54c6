// Package server exposes the FEN codec and the position library over HTTP and websocket.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/hailam/fenboard/internal/board"
	"github.com/hailam/fenboard/internal/diagram"
	"github.com/hailam/fenboard/internal/storage"
)

// Server routes /api and /ws requests.
type Server struct {
	router   *mux.Router
	store    *storage.Storage
	upgrader websocket.Upgrader

	clients     map[*websocket.Conn]struct{}
	clientsLock sync.Mutex
}

// New creates a server backed by store. Access logs go to logOut when it is not nil.
func New(store *storage.Storage, logOut io.Writer) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		store:   store,
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if logOut != nil {
		s.router.Use(func(next http.Handler) http.Handler {
			return handlers.LoggingHandler(logOut, next)
		})
	}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/fen", s.handleFEN).Methods(http.MethodPost)
	api.HandleFunc("/positions", s.handleSave).Methods(http.MethodPost)
	api.HandleFunc("/positions", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/positions/{id}", s.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/positions/{id}", s.handleDelete).Methods(http.MethodDelete)
	api.HandleFunc("/positions/{id}/diagram.png", s.handleDiagram).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWS)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close disconnects every websocket client.
func (s *Server) Close() {
	s.clientsLock.Lock()
	defer s.clientsLock.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, board.ErrInvalidFEN):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// parseFEN returns the board response for one FEN record.
func parseFEN(fen string) (BoardResponse, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return BoardResponse{OK: false, Error: err.Error()}, err
	}
	return boardToDTO(b), nil
}

func (s *Server) handleFEN(w http.ResponseWriter, r *http.Request) {
	var req FENRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad json"})
		return
	}
	resp, err := parseFEN(req.FEN)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad json"})
		return
	}
	rec, err := s.store.Save(req.Name, req.FEN)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordToDTO(rec))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordsToDTO(recs))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := rec.Board()
	if err != nil {
		writeError(w, err)
		return
	}
	resp := recordToDTO(rec)
	resp.Grid = b.Render()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := rec.Board()
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := diagram.PNG(b, diagram.DefaultSquareSize)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

// handleWS runs a FEN session over a websocket: each text message is parsed
// and answered with a BoardResponse.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	log.Printf("New websocket connection from %s", conn.RemoteAddr())

	s.clientsLock.Lock()
	s.clients[conn] = struct{}{}
	s.clientsLock.Unlock()

	defer func() {
		s.clientsLock.Lock()
		delete(s.clients, conn)
		s.clientsLock.Unlock()
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("websocket read: %v", err)
			}
			return
		}
		resp, _ := parseFEN(string(msg))
		if err := conn.WriteJSON(resp); err != nil {
			log.Printf("websocket write: %v", err)
			return
		}
	}
}
