package achievements

import (
	"encoding/json"
	"errors"
	"net/http"

	"kittygram/internal/errs"
	"kittygram/internal/middleware"
	"kittygram/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/achievements", func(ar chi.Router) {
		ar.Use(middleware.RequireUser)

		ar.Get("/", listAchievementsHandler(svc))
		ar.Post("/", createAchievementHandler(svc))
		ar.Get("/{achievementID}", getAchievementHandler(svc))
	})
}

// AchievementResponse es el payload de lectura de un logro.
// También se anida dentro de la respuesta de un gato.
type AchievementResponse struct {
	ID              string `json:"id"`
	AchievementName string `json:"achievement_name"`
}

type createAchievementRequest struct {
	AchievementName string `json:"achievement_name" validate:"required,max=64"`
}

func ToResponse(a Achievement) AchievementResponse {
	return AchievementResponse{ID: a.ID, AchievementName: a.Name}
}

// listAchievementsHandler godoc
//
//	@Summary	List achievements (alphabetical)
//	@Tags		achievements
//	@Produce	json
//	@Success	200	{array}		AchievementResponse
//	@Failure	401	{object}	errs.HTTPError
//	@Router		/achievements [get]
func listAchievementsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("list achievements")
			errs.Write(w, errs.NewInternalServerError())
			return
		}

		out := make([]AchievementResponse, 0, len(items))
		for _, a := range items {
			out = append(out, ToResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createAchievementHandler godoc
//
//	@Summary	Create an achievement
//	@Tags		achievements
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createAchievementRequest	true	"Achievement"
//	@Success	201		{object}	AchievementResponse
//	@Failure	400		{object}	errs.HTTPError
//	@Failure	409		{object}	errs.HTTPError
//	@Router		/achievements [post]
func createAchievementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAchievementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errs.Write(w, errs.NewBadRequestError("invalid json", nil))
			return
		}
		if err := validation.Struct(req); err != nil {
			writeValidation(w, err)
			return
		}

		a, err := svc.Create(r.Context(), req.AchievementName)
		switch {
		case err == nil:
			writeJSON(w, http.StatusCreated, ToResponse(a))
		case errors.Is(err, ErrAlreadyExists):
			errs.Write(w, errs.NewConflictError(err.Error()))
		case errors.Is(err, ErrInvalidInput):
			errs.Write(w, errs.NewBadRequestError("Validation failed", []errs.FieldError{
				{Field: "achievement_name", Error: "must be 1-64 characters"},
			}))
		default:
			hlog.FromRequest(r).Error().Err(err).Msg("create achievement")
			errs.Write(w, errs.NewInternalServerError())
		}
	}
}

// getAchievementHandler godoc
//
//	@Summary	Get an achievement
//	@Tags		achievements
//	@Produce	json
//	@Param		achievementID	path		string	true	"Achievement ID"
//	@Success	200				{object}	AchievementResponse
//	@Failure	404				{object}	errs.HTTPError
//	@Router		/achievements/{achievementID} [get]
func getAchievementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "achievementID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				errs.Write(w, errs.NewNotFoundError(err.Error()))
				return
			}
			hlog.FromRequest(r).Error().Err(err).Msg("get achievement")
			errs.Write(w, errs.NewInternalServerError())
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(a))
	}
}

func writeValidation(w http.ResponseWriter, err error) {
	if he := validation.ToHTTPError(err); he != nil {
		errs.Write(w, he)
		return
	}
	errs.Write(w, errs.NewBadRequestError(err.Error(), nil))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
