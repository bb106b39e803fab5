package cats

import (
	"encoding/json"
	"errors"
	"net/http"

	"kittygram/internal/errs"
	"kittygram/internal/middleware"
	"kittygram/internal/platform/hexcolor"
	"kittygram/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

func RegisterRoutes(r chi.Router, svc *Service, colors *hexcolor.Table) {
	if colors == nil {
		colors = hexcolor.Default()
	}
	p := parser{colors: colors}

	r.Route("/cats", func(cr chi.Router) {
		cr.Use(middleware.RequireUser)

		cr.Get("/", listCatsHandler(svc))
		cr.Post("/", createCatHandler(svc, p))

		cr.Get("/{catID}", getCatHandler(svc))
		// PUT exige name/color/birth_year; PATCH es parcial.
		cr.Put("/{catID}", updateCatHandler(svc, p, true))
		cr.Patch("/{catID}", updateCatHandler(svc, p, false))
		cr.Delete("/{catID}", deleteCatHandler(svc))
	})

	// Gatos del usuario autenticado
	r.With(middleware.RequireUser).Get("/me/cats", listMyCatsHandler(svc))
	r.With(middleware.RequireUser).Delete("/me/cats", deleteMyCatsHandler(svc))
}

type deletedResponse struct {
	Deleted int `json:"deleted"`
}

// listCatsHandler godoc
//
//	@Summary	List cats (alphabetical by name)
//	@Tags		cats
//	@Produce	json
//	@Success	200	{array}		CatResponse
//	@Failure	401	{object}	errs.HTTPError
//	@Router		/cats [get]
func listCatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{})
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("list cats")
			errs.Write(w, errs.NewInternalServerError())
			return
		}
		writeJSON(w, http.StatusOK, toResponses(svc, items))
	}
}

// listMyCatsHandler godoc
//
//	@Summary	List the caller's cats
//	@Tags		cats
//	@Produce	json
//	@Success	200	{array}		CatResponse
//	@Failure	401	{object}	errs.HTTPError
//	@Router		/me/cats [get]
func listMyCatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := middleware.UserID(r.Context())

		items, err := svc.List(r.Context(), ListFilter{OwnerUserID: uid})
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("list my cats")
			errs.Write(w, errs.NewInternalServerError())
			return
		}
		writeJSON(w, http.StatusOK, toResponses(svc, items))
	}
}

// deleteMyCatsHandler godoc
//
//	@Summary	Delete every cat of the caller (account removal hook)
//	@Tags		cats
//	@Produce	json
//	@Success	200	{object}	deletedResponse
//	@Failure	401	{object}	errs.HTTPError
//	@Router		/me/cats [delete]
func deleteMyCatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := middleware.UserID(r.Context())

		n, err := svc.DeleteByOwner(r.Context(), uid)
		if err != nil {
			writeServiceError(w, r, err, "delete my cats")
			return
		}
		hlog.FromRequest(r).Info().Int("deleted", n).Msg("owner cats deleted")
		writeJSON(w, http.StatusOK, deletedResponse{Deleted: n})
	}
}

// createCatHandler godoc
//
//	@Summary	Create a cat with nested achievements
//	@Tags		cats
//	@Accept		json,mpfd
//	@Produce	json
//	@Param		body	body		catRequest	true	"Cat"
//	@Success	201		{object}	CatResponse
//	@Failure	400		{object}	errs.HTTPError
//	@Failure	401		{object}	errs.HTTPError
//	@Router		/cats [post]
func createCatHandler(svc *Service, p parser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := middleware.UserID(r.Context())

		payload, err := p.parseRequest(r, true)
		if err != nil {
			writeServiceError(w, r, err, "parse cat")
			return
		}

		c, err := svc.Create(r.Context(), uid, payload.createInput())
		if err != nil {
			writeServiceError(w, r, err, "create cat")
			return
		}
		writeJSON(w, http.StatusCreated, ToResponse(c, svc.now(), svc.ImageURL))
	}
}

// getCatHandler godoc
//
//	@Summary	Get a cat
//	@Tags		cats
//	@Produce	json
//	@Param		catID	path		string	true	"Cat ID"
//	@Success	200		{object}	CatResponse
//	@Failure	404		{object}	errs.HTTPError
//	@Router		/cats/{catID} [get]
func getCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "catID"))
		if err != nil {
			writeServiceError(w, r, err, "get cat")
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(c, svc.now(), svc.ImageURL))
	}
}

// updateCatHandler godoc
//
//	@Summary	Update a cat (PUT full, PATCH partial)
//	@Description	If achievements is present the set is replaced, [] clears it; if absent it is kept.
//	@Tags		cats
//	@Accept		json,mpfd
//	@Produce	json
//	@Param		catID	path		string		true	"Cat ID"
//	@Param		body	body		catRequest	true	"Cat"
//	@Success	200		{object}	CatResponse
//	@Failure	400		{object}	errs.HTTPError
//	@Failure	403		{object}	errs.HTTPError
//	@Failure	404		{object}	errs.HTTPError
//	@Router		/cats/{catID} [put]
//	@Router		/cats/{catID} [patch]
func updateCatHandler(svc *Service, p parser, full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := middleware.UserID(r.Context())
		catID := chi.URLParam(r, "catID")

		// 404/403 antes de mirar el body
		current, err := svc.GetByID(r.Context(), catID)
		if err != nil {
			writeServiceError(w, r, err, "get cat")
			return
		}
		if current.OwnerUserID != uid {
			writeServiceError(w, r, ErrForbidden, "update cat")
			return
		}

		payload, err := p.parseRequest(r, full)
		if err != nil {
			writeServiceError(w, r, err, "parse cat")
			return
		}

		c, err := svc.Update(r.Context(), catID, uid, payload.updateInput())
		if err != nil {
			writeServiceError(w, r, err, "update cat")
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(c, svc.now(), svc.ImageURL))
	}
}

// deleteCatHandler godoc
//
//	@Summary	Delete a cat
//	@Tags		cats
//	@Param		catID	path	string	true	"Cat ID"
//	@Success	204	"no content"
//	@Failure	403	{object}	errs.HTTPError
//	@Failure	404	{object}	errs.HTTPError
//	@Router		/cats/{catID} [delete]
func deleteCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := middleware.UserID(r.Context())

		if err := svc.Delete(r.Context(), chi.URLParam(r, "catID"), uid); err != nil {
			writeServiceError(w, r, err, "delete cat")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toResponses(svc *Service, items []Cat) []CatResponse {
	now := svc.now()
	out := make([]CatResponse, 0, len(items))
	for _, c := range items {
		out = append(out, ToResponse(c, now, svc.ImageURL))
	}
	return out
}

// writeServiceError mapea sentinels y errores de validación a HTTP.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var he *errs.HTTPError
	switch {
	case errors.As(err, &he):
		errs.Write(w, he)
	case validation.ToHTTPError(err) != nil:
		errs.Write(w, validation.ToHTTPError(err))
	case errors.Is(err, ErrNotFound):
		errs.Write(w, errs.NewNotFoundError(err.Error()))
	case errors.Is(err, ErrForbidden):
		errs.Write(w, errs.NewForbiddenError(err.Error()))
	case errors.Is(err, ErrInvalidInput):
		errs.Write(w, errs.NewBadRequestError(err.Error(), nil))
	case errors.Is(err, ErrDuplicateAchievement):
		errs.Write(w, errs.NewBadRequestError("Validation failed", []errs.FieldError{
			{Field: "achievements", Error: ErrDuplicateAchievement.Error()},
		}))
	case errors.Is(err, ErrBirthYearOutOfRange):
		errs.Write(w, errs.NewBadRequestError("Validation failed", []errs.FieldError{
			{Field: "birth_year", Error: err.Error()},
		}))
	default:
		hlog.FromRequest(r).Error().Err(err).Msg(op)
		errs.Write(w, errs.NewInternalServerError())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
