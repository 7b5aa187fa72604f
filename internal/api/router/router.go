package router

import (
	"net/http"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "cadastro/docs" // Registra a documentação gerada pelo swag
	"cadastro/internal/api/auth"
	"cadastro/internal/api/person"
	"cadastro/internal/pkg/logger"
	"cadastro/internal/pkg/middleware"
)

// Middleware é a assinatura comum dos middlewares HTTP da aplicação.
type Middleware func(http.Handler) http.Handler

// Deps reúne os Handlers e middlewares já inicializados pelo main.
type Deps struct {
	AuthHandler *auth.Handler
	PersonV1    *person.Handler
	PersonV2    *person.Handler

	Auth      Middleware                // Obrigatório nas rotas de pessoas
	Pusher    middleware.SnapshotPusher // nil desativa o envio do snapshot
	RateLimit Middleware                // nil desativa o rate limiting

	Logger      logger.Logger
	CORSOrigins []string
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	// --- 1. Health Check e Documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("/api/docs/", httpSwagger.WrapHandler)

	// --- 2. Autenticação (pública) ---
	mux.HandleFunc("POST /auth/login", deps.AuthHandler.LoginHandler)

	// --- 3. Pessoas (protegidas) ---
	protect := func(h http.HandlerFunc) http.Handler {
		return deps.Auth(middleware.SnapshotSync(deps.Pusher)(h))
	}

	registerPersonRoutes(mux, "/api/v1/pessoas", deps.PersonV1, protect)
	registerPersonRoutes(mux, "/api/v2/pessoas", deps.PersonV2, protect)
	mux.Handle("GET /api/v2/pessoas/endereco/{endereco}", protect(deps.PersonV2.GetPeopleByAddressHandler))

	// --- 4. Middlewares globais ---
	var handler http.Handler = mux
	if deps.RateLimit != nil {
		handler = deps.RateLimit(handler)
	}
	handler = newCORS(deps.CORSOrigins).Handler(handler)
	handler = middleware.RequestLogger(deps.Logger)(handler)

	return handler
}

func registerPersonRoutes(mux *http.ServeMux, base string, h *person.Handler, protect func(http.HandlerFunc) http.Handler) {
	mux.Handle("POST "+base, protect(h.CreatePersonHandler))
	mux.Handle("GET "+base, protect(h.GetAllPeopleHandler))
	mux.Handle("GET "+base+"/cpf/{cpf}", protect(h.GetPersonByCPFHandler))
	mux.Handle("GET "+base+"/{id}", protect(h.GetPersonByIDHandler))
	mux.Handle("PATCH "+base+"/{id}", protect(h.UpdatePersonHandler))
	mux.Handle("DELETE "+base+"/{id}", protect(h.DeletePersonHandler))
}

func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
	})
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
