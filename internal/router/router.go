package router

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	_ "kittygram/docs" // registra los docs de swagger
	blobmem "kittygram/internal/adapters/blob/memory"
	mem "kittygram/internal/adapters/storage/memory"
	"kittygram/internal/domain/achievements"
	"kittygram/internal/domain/cats"
	"kittygram/internal/errs"
	"kittygram/internal/middleware"
	"kittygram/internal/platform/hexcolor"
	"kittygram/internal/ports/auth"
	"kittygram/internal/ports/blob"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	httpSwagger "github.com/swaggo/http-swagger"
)

const mediaPrefix = "/media/"

type Options struct {
	Logger       zerolog.Logger
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcionales: si vienen nil se usan los adapters en memoria.
	Store  cats.Store
	Blobs  blob.Store
	Colors *hexcolor.Table
}

func NewRouter(opts Options) http.Handler {
	store := opts.Store
	if store == nil {
		store = mem.NewStore()
	}
	blobs := opts.Blobs
	if blobs == nil {
		blobs = blobmem.NewStore(mediaPrefix)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Services por módulo
	catsSvc := cats.NewService(store, blobs)
	achievementsSvc := achievements.NewService(store.Achievements())

	// Rutas por módulo
	cats.RegisterRoutes(r, catsSvc, opts.Colors)
	achievements.RegisterRoutes(r, achievementsSvc)

	r.Get(mediaPrefix+"*", mediaHandler(blobs))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// mediaHandler sirve las imágenes subidas. Con S3 normalmente se sirven
// directo desde el bucket y esta ruta queda sin uso.
func mediaHandler(blobs blob.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		if key == "" || strings.Contains(key, "..") {
			errs.Write(w, errs.NewNotFoundError("not found"))
			return
		}

		obj, err := blobs.Get(r.Context(), key)
		if errors.Is(err, blob.ErrNotFound) {
			errs.Write(w, errs.NewNotFoundError("not found"))
			return
		}
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Str("key", key).Msg("read blob")
			errs.Write(w, errs.NewInternalServerError())
			return
		}
		defer obj.Body.Close()

		if obj.ContentType != "" {
			w.Header().Set("Content-Type", obj.ContentType)
		}
		if obj.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, obj.Body); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Str("key", key).Msg("stream blob")
		}
	}
}
