package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/service"
	"github.com/wricardo/campaign-keeper/transport/websocket"
)

// maxBodySize bounds request bodies, imports included
const maxBodySize = 8 << 20

// Server represents the REST API server
type Server struct {
	service service.CampaignService
	hub     *websocket.Hub
	router  *mux.Router
	logger  *slog.Logger
}

// NewServer creates a new API server. hub may be nil, in which case /ws is not served.
func NewServer(campaignService service.CampaignService, hub *websocket.Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		service: campaignService,
		hub:     hub,
		router:  mux.NewRouter(),
		logger:  logger,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Campaign document
	api.HandleFunc("/campaign", s.handleGetCampaign).Methods("GET")
	api.HandleFunc("/campaign", s.handleSaveCampaign).Methods("POST")
	api.HandleFunc("/campaign/export", s.handleExport).Methods("GET")
	api.HandleFunc("/campaign/import", s.handleImport).Methods("POST")
	api.HandleFunc("/campaign/selection", s.handleSelect).Methods("PUT")
	api.HandleFunc("/campaign/toasts", s.handleToasts).Methods("PUT")

	// Settlements and survivors
	api.HandleFunc("/settlements", s.handleCreateSettlement).Methods("POST")
	api.HandleFunc("/settlements/{id}", s.handleSaveSettlement).Methods("PUT")
	api.HandleFunc("/settlements/{id}", s.handleDeleteSettlement).Methods("DELETE")
	api.HandleFunc("/survivors", s.handleSaveSurvivor).Methods("POST")
	api.HandleFunc("/survivors/{id}", s.handleSaveSurvivor).Methods("PUT")
	api.HandleFunc("/survivors/{id}", s.handleDeleteSurvivor).Methods("DELETE")

	// Hunts
	api.HandleFunc("/hunts", s.handleCreateHunt).Methods("POST")
	api.HandleFunc("/hunts/{id}/move", s.handleMoveHunt).Methods("POST")
	api.HandleFunc("/hunts/{id}/resolve", s.handleResolveHunt).Methods("POST")
	api.HandleFunc("/hunts/{id}/abandon", s.handleAbandonHunt).Methods("POST")
	api.HandleFunc("/hunts/{id}/survivors/{sid}", s.handleHuntDetails).Methods("PUT")
	api.HandleFunc("/hunts/{id}", s.handleDeleteHunt).Methods("DELETE")

	// Showdowns
	api.HandleFunc("/showdowns", s.handleCreateShowdown).Methods("POST")
	api.HandleFunc("/showdowns/{id}/ai-card", s.handleDrawAICard).Methods("POST")
	api.HandleFunc("/showdowns/{id}/survivors/{sid}/{action}", s.handleSurvivorAction).Methods("POST")
	api.HandleFunc("/showdowns/{id}/next-turn", s.handleNextTurn).Methods("POST")
	api.HandleFunc("/showdowns/{id}/end-round", s.handleEndRound).Methods("POST")
	api.HandleFunc("/showdowns/{id}/survivors/{sid}", s.handleShowdownDetails).Methods("PUT")
	api.HandleFunc("/showdowns/{id}/end", s.handleEndShowdown).Methods("POST")
	api.HandleFunc("/showdowns/{id}", s.handleDeleteShowdown).Methods("DELETE")

	// Reference data
	api.HandleFunc("/monsters", s.handleListMonsters).Methods("GET")
	api.HandleFunc("/monsters/{name}", s.handleGetMonster).Methods("GET")
	api.HandleFunc("/board", s.handleBoard).Methods("GET")

	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	if s.hub != nil {
		s.router.HandleFunc("/ws", s.handleWebSocket)
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondResult writes a pipeline result, mapping failures to a status by error kind
func respondResult(w http.ResponseWriter, status int, res *service.Result) {
	if !res.Success {
		status = statusFor(res.Err)
	}
	respondJSON(w, status, res)
}

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.Is(err, engine.ErrEntityNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrTurnOrder), errors.Is(err, engine.ErrHuntState):
		return http.StatusConflict
	case errors.Is(err, engine.ErrPersistence):
		return http.StatusInternalServerError
	case engine.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{"status": "ok"}
	if s.hub != nil {
		body["clients"] = s.hub.ClientCount()
	}
	respondJSON(w, http.StatusOK, body)
}

// Campaign Handlers

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := s.service.GetCampaign(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}

// saveRequest is a raw patch plus the message shown on success
type saveRequest struct {
	service.Patch
	Message string `json:"message,omitempty"`
}

func (s *Server) handleSaveCampaign(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !decode(w, r, &req) {
		return
	}
	respondResult(w, http.StatusOK, s.service.Save(r.Context(), req.Patch, req.Message))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.Export(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="campaign.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	respondResult(w, http.StatusOK, s.service.Import(r.Context(), data))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var sel service.Selection
	if !decode(w, r, &sel) {
		return
	}
	respondResult(w, http.StatusOK, s.service.Select(r.Context(), sel))
}

func (s *Server) handleToasts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Disabled bool `json:"disabled"`
	}
	if !decode(w, r, &req) {
		return
	}
	respondResult(w, http.StatusOK, s.service.SetDisableToasts(r.Context(), req.Disabled))
}

// Settlement and Survivor Handlers

func (s *Server) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req service.SettlementRequest
	if !decode(w, r, &req) {
		return
	}
	respondResult(w, http.StatusCreated, s.service.CreateSettlement(r.Context(), req))
}

func (s *Server) handleSaveSettlement(w http.ResponseWriter, r *http.Request) {
	var settlement engine.Settlement
	if !decode(w, r, &settlement) {
		return
	}
	settlement.ID = mux.Vars(r)["id"]
	respondResult(w, http.StatusOK, s.service.SaveSettlement(r.Context(), settlement))
}

func (s *Server) handleDeleteSettlement(w http.ResponseWriter, r *http.Request) {
	respondResult(w, http.StatusOK, s.service.DeleteSettlement(r.Context(), mux.Vars(r)["id"]))
}

func (s *Server) handleSaveSurvivor(w http.ResponseWriter, r *http.Request) {
	var survivor engine.Survivor
	if !decode(w, r, &survivor) {
		return
	}
	status := http.StatusCreated
	if id, ok := mux.Vars(r)["id"]; ok {
		survivor.ID = id
		status = http.StatusOK
	}
	respondResult(w, status, s.service.SaveSurvivor(r.Context(), survivor))
}

func (s *Server) handleDeleteSurvivor(w http.ResponseWriter, r *http.Request) {
	respondResult(w, http.StatusOK, s.service.DeleteSurvivor(r.Context(), mux.Vars(r)["id"]))
}

// Hunt Handlers

func (s *Server) handleCreateHunt(w http.ResponseWriter, r *http.Request) {
	var req service.HuntRequest
	if !decode(w, r, &req) {
		return
	}
	respondResult(w, http.StatusCreated, s.service.CreateHunt(r.Context(), req))
}

func (s *Server) handleMoveHunt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SurvivorPosition *int `json:"survivorPosition"`
		QuarryPosition   *int `json:"quarryPosition"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.SurvivorPosition == nil || req.QuarryPosition == nil {
		respondError(w, http.StatusBadRequest, "survivorPosition and quarryPosition are required")
		return
	}
	res := s.service.MoveHunt(r.Context(), mux.Vars(r)["id"], *req.SurvivorPosition, *req.QuarryPosition)
	respondResult(w, http.StatusOK, res)
}

func (s *Server) handleResolveHunt(w http.ResponseWriter, r *http.Request) {
	respondResult(w, http.StatusOK, s.service.ResolveHunt(r.Context(), mux.Vars(r)["id"]))
}

func (s *Server) handleAbandonHunt(w http.ResponseWriter, r *http.Request) {
	respondResult(w, http.StatusOK, s.service.AbandonHunt(r.Context(), mux.Vars(r)["id"]))
}

func (s *Server) handleHuntDetails(w http.ResponseWriter, r *http.Request) {
	var details engine.HuntSurvivorDetails
	if !decode(w, r, &details) {
		return
	}
	vars := mux.Vars(r)
	details.SurvivorID = vars["sid"]
	respondResult(w, http.StatusOK, s.service.UpdateHuntDetails(r.Context(), vars["id"], details))
}

func (s *Server) handleDeleteHunt(w http.ResponseWriter, r *http.Request) {
	respondResult(w, http.StatusOK, s.service.DeleteHunt(r.Context(), mux.Vars(r)["id"]))
}

// Showdown Handlers

func (s *Server) handleCreateShowdown(w http.ResponseWriter, r *http.Request) {
	var req service.ShowdownRequest
	if !decode(w, r, &req) {
		return
	}
	respondResult(w, http.StatusCreated, s.service.CreateShowdown(r.Context(), req))
}

func (s *Server) handleDrawAICard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Instance int `json:"instance"`
	}
	if !decode(w, r, &req) {
		return
	}
	respondResult(w, http.StatusOK, s.service.DrawAICard(r.Context(), mux.Vars(r)["id"], req.Instance))
}

func (s *Server) handleSurvivorAction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	action := engine.SurvivorAction(vars["action"])
	if action != engine.ActionActivation && action != engine.ActionMovement {
		respondError(w, http.StatusBadRequest, "Unknown action: "+vars["action"])
		return
	}
	respondResult(w, http.StatusOK, s.service.UseSurvivorAction(r.Context(), vars["id"], vars["sid"], action))
}

func (s *Server) handleNextTurn(w http.ResponseWriter, r *http.Request) {
	respondResult(w, http.StatusOK, s.service.NextTurn(r.Context(), mux.Vars(r)["id"]))
}

func (s *Server) handleEndRound(w http.ResponseWriter, r *http.Request) {
	respondResult(w, http.StatusOK, s.service.EndRound(r.Context(), mux.Vars(r)["id"]))
}

func (s *Server) handleShowdownDetails(w http.ResponseWriter, r *http.Request) {
	var details engine.ShowdownSurvivorDetails
	if !decode(w, r, &details) {
		return
	}
	vars := mux.Vars(r)
	details.SurvivorID = vars["sid"]
	respondResult(w, http.StatusOK, s.service.UpdateShowdownDetails(r.Context(), vars["id"], details))
}

func (s *Server) handleEndShowdown(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Outcome engine.ShowdownOutcome `json:"outcome"`
	}
	if !decode(w, r, &req) {
		return
	}
	respondResult(w, http.StatusOK, s.service.EndShowdown(r.Context(), mux.Vars(r)["id"], req.Outcome))
}

func (s *Server) handleDeleteShowdown(w http.ResponseWriter, r *http.Request) {
	respondResult(w, http.StatusOK, s.service.DeleteShowdown(r.Context(), mux.Vars(r)["id"]))
}

// Reference Handlers

func (s *Server) handleListMonsters(w http.ResponseWriter, r *http.Request) {
	monsters, err := s.service.ListMonsters(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, monsters)
}

func (s *Server) handleGetMonster(w http.ResponseWriter, r *http.Request) {
	monster, err := s.service.GetMonster(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, monster)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, engine.Spaces())
}

// handleWebSocket sends the current campaign first, then every commit
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	var initial *websocket.Message
	if campaign, err := s.service.GetCampaign(r.Context()); err == nil {
		initial = &websocket.Message{Event: websocket.EventCampaignUpdate, Campaign: campaign}
	} else {
		s.logger.Warn("failed to read campaign for websocket client", "error", err)
	}
	s.hub.ServeWS(w, r, initial)
}
