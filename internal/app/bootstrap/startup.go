// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	userstore "github.com/matematikhane/matematikhane/internal/app/store/users"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. The only
// work here is the admin bootstrap: without it a fresh deployment would have
// no way to reach the console.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" {
		return nil
	}

	if err := userstore.New(deps.MongoDatabase).PromoteAdmin(ctx, appCfg.AdminEmail); err != nil {
		logger.Error("admin bootstrap failed", zap.Error(err))
		return err
	}
	logger.Info("admin bootstrap complete", zap.String("email", appCfg.AdminEmail))
	return nil
}
