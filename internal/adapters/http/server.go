package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	api "sustaindash/internal/api"
	"sustaindash/internal/domain"
	"sustaindash/internal/logging"
	"sustaindash/internal/ports"
	companysvc "sustaindash/internal/services/companies"
)

// Server implements the generated StrictServerInterface.
type Server struct {
	companies ports.Companies
	log       *zap.Logger
	origins   []string
}

var _ api.StrictServerInterface = (*Server)(nil)

func New(companies ports.Companies, log *zap.Logger, allowedOrigins []string) *Server {
	return &Server{companies: companies, log: logging.OrNop(log), origins: allowedOrigins}
}

// Routes returns a chi.Router mounting the generated handlers behind the
// request id, logging, recovery and CORS middleware.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handler := api.NewStrictHandlerWithOptions(s, []api.StrictMiddlewareFunc{encodable}, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  s.requestError,
		ResponseErrorHandlerFunc: s.responseError,
	})
	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.requestError,
	})
	return r
}

func (s *Server) GetRoot(ctx context.Context, _ api.GetRootRequestObject) (api.GetRootResponseObject, error) {
	return api.GetRoot200JSONResponse{Message: "sustaindash backend is running"}, nil
}

func (s *Server) GetHealthz(ctx context.Context, _ api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	return api.GetHealthz200JSONResponse{Status: "ok"}, nil
}

func (s *Server) GetEntityIds(ctx context.Context, _ api.GetEntityIdsRequestObject) (api.GetEntityIdsResponseObject, error) {
	ids, err := s.companies.EntityIDs(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return api.GetEntityIds200JSONResponse{EntityIds: ids}, nil
}

func (s *Server) GetCompany(ctx context.Context, req api.GetCompanyRequestObject) (api.GetCompanyResponseObject, error) {
	rec, err := s.companies.Get(ctx, req.EntityId)
	if err != nil {
		if errors.Is(err, companysvc.ErrNotFound) {
			return api.GetCompany404JSONResponse{ErrorJSONResponse: api.ErrorJSONResponse{Error: err.Error()}}, nil
		}
		return nil, err
	}
	return api.GetCompany200JSONResponse(rec), nil
}

func (s *Server) GetComparisons(ctx context.Context, req api.GetComparisonsRequestObject) (api.GetComparisonsResponseObject, error) {
	n := 0
	if req.Params.N != nil {
		// An explicit n=0 is an error; only an absent n takes the default.
		if n = *req.Params.N; n == 0 {
			return comparisonsBadRequest("n must be positive"), nil
		}
	}
	recs, err := s.companies.Comparisons(ctx, req.EntityId, n)
	if err != nil {
		if errors.Is(err, companysvc.ErrInvalidArgument) {
			return comparisonsBadRequest(err.Error()), nil
		}
		return nil, err
	}
	if recs == nil {
		recs = []domain.CompanyRecord{}
	}
	return api.GetComparisons200JSONResponse{Comparisons: recs}, nil
}

func comparisonsBadRequest(msg string) api.GetComparisons400JSONResponse {
	return api.GetComparisons400JSONResponse{ErrorJSONResponse: api.ErrorJSONResponse{Error: msg}}
}

// encodable turns a response json cannot marshal into an error, so it
// reaches responseError before any status line is written.
func encodable(f api.StrictHandlerFunc, operationID string) api.StrictHandlerFunc {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request, request any) (any, error) {
		resp, err := f(ctx, w, r, request)
		if err != nil || resp == nil {
			return resp, err
		}
		if _, err := json.Marshal(resp); err != nil {
			return nil, fmt.Errorf("%s: encode response: %w", operationID, err)
		}
		return resp, nil
	}
}

// requestError answers parameter binding failures.
func (s *Server) requestError(w http.ResponseWriter, r *http.Request, err error) {
	msg := "bad request"
	var perr *api.InvalidParamFormatError
	if errors.As(err, &perr) {
		msg = "invalid parameter " + perr.ParamName
		if perr.ParamName == "entity_id" {
			msg = "entity_id must be an integer"
		}
	}
	writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: msg})
}

func (s *Server) responseError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// writeJSON marshals before writing the header so a failed encode still
// yields a complete 500.
func writeJSON(w http.ResponseWriter, code int, body any) {
	buf, err := json.Marshal(body)
	if err != nil {
		code = http.StatusInternalServerError
		buf = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(buf, '\n'))
}
