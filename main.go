// @title Campus Maspormenos API
// @version 1.0
// @description Backend del portal de formación interna de Maspormenos: exámenes generados por IA sobre los manuales operativos y panel de seguimiento para el formador.

// @contact.name Soporte Campus
// @contact.email campus@maspormenos.example

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"campus_backend/internal/app"
	"campus_backend/internal/config"
	"campus_backend/pkg/configwatcher"
	"campus_backend/pkg/logger"
	"flag"
	"log"

	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "directorio con config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// Config edits are picked up and logged; wired components keep their
	// startup values until the next restart.
	go func() {
		err := configwatcher.WatchConfig(*configDir, func(reloaded *config.Config) {
			logger.Log.Info("config file changed, restart to apply",
				zap.Int("seconds_per_question", reloaded.Quiz.SecondsPerQuestion),
				zap.Bool("auto_submit", reloaded.Quiz.AutoSubmit))
		})
		if err != nil {
			logger.Log.Error("config watcher stopped", zap.Error(err))
		}
	}()

	application.Run()
}
