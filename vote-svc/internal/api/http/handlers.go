package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"lunch-vote/vote-svc/internal/domain"
	"lunch-vote/vote-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type Handler struct {
	Votes service.VoteServiceInterface
	Loc   *time.Location
}

func NewHandler(votes service.VoteServiceInterface, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{Votes: votes, Loc: loc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/votes", h.castVote).Methods("POST")
	r.HandleFunc("/api/votes/results", h.results).Methods("GET")
	r.HandleFunc("/api/votes/users/{userId:[0-9]+}", h.userVote).Methods("GET")
	r.HandleFunc("/api/votes/restaurants/{restaurantId:[0-9]+}", h.restaurantVotes).Methods("GET")
}

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return cors.Default().Handler(r)
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("Vote Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "vote-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) castVote(w http.ResponseWriter, r *http.Request) {
	var req domain.CastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 || req.RestaurantID <= 0 {
		http.Error(w, "user_id and restaurant_id are required", http.StatusBadRequest)
		return
	}

	vote, err := h.Votes.Cast(r.Context(), req.UserID, req.RestaurantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}

func (h *Handler) userVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	day, ok := h.date(w, r)
	if !ok {
		return
	}

	vote, err := h.Votes.ForUserOnDate(r.Context(), userID, day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vote)
}

func (h *Handler) restaurantVotes(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathID(w, r, "restaurantId")
	if !ok {
		return
	}
	day, ok := h.date(w, r)
	if !ok {
		return
	}

	votes, err := h.Votes.ForRestaurant(r.Context(), restaurantID, day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

func (h *Handler) results(w http.ResponseWriter, r *http.Request) {
	day, ok := h.date(w, r)
	if !ok {
		return
	}

	tallies, err := h.Votes.Results(r.Context(), day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tallies)
}

// date parses the optional date query parameter. A missing date is the zero
// time; the service decides what that means.
func (h *Handler) date(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Time{}, true
	}
	day, err := time.ParseInLocation(domain.DateLayout, raw, h.Loc)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return time.Time{}, false
	}
	return day, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyVoted):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrRestaurantNotFound), errors.Is(err, service.ErrVoteNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("[vote-svc] request failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// pathID parses a numeric route variable, answering 400 when it does not fit
// an int64.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		http.Error(w, name+" must be a 64-bit integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
