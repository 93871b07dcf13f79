package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/weeklisthq/weeklist-api/internal/api/shared"
	"github.com/weeklisthq/weeklist-api/internal/service"
	"github.com/weeklisthq/weeklist-api/internal/store"
)

// WeeklistHandler handles the weeklist routes: lifecycle, task mutations and
// the public feed.
type WeeklistHandler struct {
	weeklistService service.WeeklistService
	validator       *validator.Validate
	logger          *slog.Logger
}

// NewWeeklistHandler creates a new WeeklistHandler.
func NewWeeklistHandler(weeklistService service.WeeklistService, log *slog.Logger) *WeeklistHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WeeklistHandler{
		weeklistService: weeklistService,
		validator:       validator.New(),
		logger:          log.With("component", "weeklist_handler"),
	}
}

// errorMessage pairs a sentinel error with the client-facing message for it.
// Per-route mappings are ordered so specific sentinels win over wrapped ones.
type errorMessage struct {
	target  error
	message string
}

// respondMapped writes the message mapped to err, or the route's fallback.
func respondMapped(w http.ResponseWriter, r *http.Request, err error, mappings []errorMessage, fallback string) {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			shared.RespondWithError(w, r, MapErrorToStatusCode(err), m.message, err)
			return
		}
	}
	shared.RespondWithError(w, r, MapErrorToStatusCode(err), fallback, err)
}

// Create handles POST /create-weeklist.
func (h *WeeklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "You're not logged in!", nil)
		return
	}

	var req CreateWeeklistRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, InvalidPayloadMessage, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, InvalidPayloadMessage, err)
		return
	}

	weeklist, err := h.weeklistService.Create(r.Context(), userID, req.Tasks)
	if err != nil {
		respondMapped(w, r, err, []errorMessage{
			{service.ErrQuotaExceeded, "Cannot create, exceeded the limit!"},
		}, SomethingWentWrong)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, "Weeklist created successfully!", weeklist)
}

// List handles GET /display-weeklists.
func (h *WeeklistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "You're not logged in!", nil)
		return
	}

	weeklists, err := h.weeklistService.List(r.Context(), userID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SomethingWentWrong, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Successfull!", weeklists)
}

// Get handles GET /weeklist/{id}.
func (h *WeeklistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, weeklistID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	weeklist, err := h.weeklistService.Get(r.Context(), userID, weeklistID)
	if err != nil {
		respondMapped(w, r, err, []errorMessage{
			{store.ErrWeeklistNotFound, "Weeklist does not exist."},
		}, SomethingWentWrong)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Successfully fetched weeklist information.", weeklist)
}

// Delete handles DELETE /delete-weeklist/{id}.
func (h *WeeklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, weeklistID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	weeklist, err := h.weeklistService.Delete(r.Context(), userID, weeklistID)
	if err != nil {
		respondMapped(w, r, err, []errorMessage{
			{service.ErrWindowExpired, "Could not delete. Exceeded modification time!"},
			{store.ErrWeeklistNotFound, "Weeklist does not exist!"},
		}, "Could not delete. Something went wrong!")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, fmt.Sprintf("Deleted %s successfully!", weeklist.Name))
}

// AddTask handles PATCH /add-task/{id}.
func (h *WeeklistHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	userID, weeklistID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	var req AddTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, InvalidPayloadMessage, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, InvalidPayloadMessage, err)
		return
	}

	weeklist, err := h.weeklistService.AddTask(r.Context(), userID, weeklistID, req.NewTask)
	if err != nil {
		respondMapped(w, r, err, []errorMessage{
			{service.ErrWindowExpired, "Cannot add new task. Exceeded modification time."},
			{store.ErrWeeklistNotFound, "Weeklist not exists!"},
		}, SomethingWentWrong)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Successfully added new task.", weeklist)
}

// DeleteTask handles PATCH /delete-task/{id}/{taskId}.
func (h *WeeklistHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, weeklistID, taskID, ok := h.taskPathIDs(w, r)
	if !ok {
		return
	}

	weeklist, err := h.weeklistService.DeleteTask(r.Context(), userID, weeklistID, taskID)
	if err != nil {
		respondMapped(w, r, err, []errorMessage{
			{service.ErrWindowExpired, "Cannot delete task. Exceeded modification time."},
			{service.ErrTaskNotFound, "Task does not exist."},
			{store.ErrWeeklistNotFound, "Weeklist not exists!"},
		}, SomethingWentWrong)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Successfully deleted task!", weeklist)
}

// EditTask handles PATCH /edit-task/{id}/{taskId}.
func (h *WeeklistHandler) EditTask(w http.ResponseWriter, r *http.Request) {
	userID, weeklistID, taskID, ok := h.taskPathIDs(w, r)
	if !ok {
		return
	}

	var req EditTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, InvalidPayloadMessage, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, InvalidPayloadMessage, err)
		return
	}

	weeklist, err := h.weeklistService.EditTask(r.Context(), userID, weeklistID, taskID, req.UpdatedTask)
	if err != nil {
		respondMapped(w, r, err, []errorMessage{
			{service.ErrWindowExpired, "Cannot edit task. Exceeded modification time."},
			{service.ErrTaskNotFound, "Task does not exist."},
			{store.ErrWeeklistNotFound, "Weeklist does not exist."},
		}, SomethingWentWrong)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Updated task successfully.", weeklist)
}

// ToggleTask handles PATCH /mark-task/{id}/{taskId}.
func (h *WeeklistHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	userID, weeklistID, taskID, ok := h.taskPathIDs(w, r)
	if !ok {
		return
	}

	weeklist, err := h.weeklistService.ToggleTask(r.Context(), userID, weeklistID, taskID)
	if err != nil {
		respondMapped(w, r, err, []errorMessage{
			{service.ErrWeeklistInactive, "Inactive weeklist."},
			{service.ErrWeeklistCompleted, "Cannot unmark. The weeklist is already completed."},
			{service.ErrTaskNotFound, "Task does not exist."},
			{store.ErrWeeklistNotFound, "Weeklist does not exist."},
		}, "Something went wrong.")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Marked task successfully.", weeklist)
}

// Feed handles GET /feed.
func (h *WeeklistHandler) Feed(w http.ResponseWriter, r *http.Request) {
	weeklists, err := h.weeklistService.Feed(r.Context())
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SomethingWentWrong, err)
		return
	}

	if len(weeklists) == 0 {
		shared.RespondWithMessage(w, r, http.StatusOK, "No active weeklists available!")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, "Successfully fetched all active weeklists.", weeklists)
}

// pathIDs extracts the authenticated user and the weeklist path parameter,
// responding directly on failure.
func (h *WeeklistHandler) pathIDs(w http.ResponseWriter, r *http.Request) (userID, weeklistID uuid.UUID, ok bool) {
	userID, found := getUserIDFromContext(r)
	if !found {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "You're not logged in!", nil)
		return uuid.Nil, uuid.Nil, false
	}

	weeklistID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, InvalidPayloadMessage, err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, weeklistID, true
}

// taskPathIDs additionally extracts the task path parameter.
func (h *WeeklistHandler) taskPathIDs(w http.ResponseWriter, r *http.Request) (userID, weeklistID, taskID uuid.UUID, ok bool) {
	userID, weeklistID, ok = h.pathIDs(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	taskID, err := getPathUUID(r, "taskId")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, InvalidPayloadMessage, err)
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return userID, weeklistID, taskID, true
}
