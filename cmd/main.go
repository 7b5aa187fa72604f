// @title API de Cadastro de Pessoas
// @version 1.0
// @description API para gerenciamento de cadastro de pessoas
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Informe "Bearer {token}".
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cadastro/config"
	"cadastro/internal/app"
	"cadastro/internal/pkg/logger"
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	if err := godotenv.Load(); err != nil {
		// Sem .env seguimos apenas com o ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	appLog, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("❌ Falha ao inicializar o logger: %v", err)
	}
	defer appLog.Sync()
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "database_path": cfg.DatabasePath})

	// 2. Snapshot, banco, serviços e rotas
	a, err := app.New(context.Background(), cfg, appLog)
	if err != nil {
		appLog.Fatal("Falha ao inicializar a aplicação.", err)
	}
	defer a.Close()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.Handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 3. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor ouvindo na porta", map[string]interface{}{"port": cfg.Port, "docs": "/api/docs/"})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	// Aguarda os envios de snapshot em andamento
	if err := a.WaitForSnapshots(shutdownCtx); err != nil {
		appLog.Error("Envios de snapshot pendentes no encerramento.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
