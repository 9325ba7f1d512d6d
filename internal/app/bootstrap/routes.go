// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/matematikhane/matematikhane/internal/app/courseops"
	adminfeature "github.com/matematikhane/matematikhane/internal/app/features/admin"
	blogfeature "github.com/matematikhane/matematikhane/internal/app/features/blog"
	coursesfeature "github.com/matematikhane/matematikhane/internal/app/features/courses"
	errorsfeature "github.com/matematikhane/matematikhane/internal/app/features/errors"
	healthfeature "github.com/matematikhane/matematikhane/internal/app/features/health"
	loginfeature "github.com/matematikhane/matematikhane/internal/app/features/login"
	quizfeature "github.com/matematikhane/matematikhane/internal/app/features/quiz"
	"github.com/matematikhane/matematikhane/internal/app/quizgen"
	coursestore "github.com/matematikhane/matematikhane/internal/app/store/course"
	quizstore "github.com/matematikhane/matematikhane/internal/app/store/quizzes"
	"github.com/matematikhane/matematikhane/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The app serves a JSON API under /api
// plus static assets and a health endpoint; session middleware runs globally
// so any handler can ask for the current user.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)

	// Shared service wiring.
	courses := coursestore.New(deps.MongoDatabase, logger)
	quizzes := quizstore.New(deps.MongoDatabase)
	svc := courseops.New(courses, quizzes, logger)
	gen := quizgen.New(appCfg.GeminiAPIKey, appCfg.GeminiModel, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli).
	r.Handle("/static/*", fileserver.Handler("/static", appCfg.StaticDir))

	// Session endpoints: /api/login, /api/logout, /api/me.
	verifier := loginfeature.GoogleVerifier{ClientID: appCfg.GoogleClientID}
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, verifier, errLog, logger)
	r.Mount("/api", loginfeature.Routes(loginHandler))

	// Public course catalog.
	coursesHandler := coursesfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/api/grades", coursesfeature.Routes(coursesHandler))

	// Published quizzes and scoring.
	quizHandler := quizfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/api/quiz", quizfeature.Routes(quizHandler))

	// Blog, public side.
	blogHandler := blogfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/api/posts", blogfeature.Routes(blogHandler))

	// Admin console: subjects, resources, quiz generate/publish.
	adminHandler := adminfeature.NewHandler(svc, gen, errLog, logger)
	r.Mount("/api/admin", adminfeature.Routes(adminHandler, sessionMgr))

	// Blog, admin side.
	blogAdminHandler := blogfeature.NewAdminHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/api/admin/posts", blogfeature.AdminRoutes(blogAdminHandler, sessionMgr))

	return r, nil
}
