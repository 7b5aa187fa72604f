// Entrypoint para AWS Lambda atrás do API Gateway (REST, payload v1).
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"cadastro/config"
	"cadastro/internal/app"
	"cadastro/internal/pkg/logger"
)

type proxy interface {
	ProxyWithContext(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

type snapshotWaiter interface {
	WaitForSnapshots(ctx context.Context) error
}

// newHandler responde pelo adapter e só retorna depois dos envios de snapshot.
// O ambiente da Lambda congela após o retorno, então um envio em background não terminaria.
func newHandler(p proxy, w snapshotWaiter, log logger.Logger) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp, err := p.ProxyWithContext(ctx, req)
		if werr := w.WaitForSnapshots(ctx); werr != nil {
			log.Error("Envio de snapshot não concluído antes do fim da invocação.", werr)
		}
		return resp, err
	}
}

func main() {
	cfg := config.LoadConfig()
	appLog, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("❌ Falha ao inicializar o logger: %v", err)
	}
	defer appLog.Sync()

	// Cold start: baixa o snapshot e monta as rotas uma vez por container.
	a, err := app.New(context.Background(), cfg, appLog)
	if err != nil {
		appLog.Fatal("Falha ao inicializar a aplicação.", err)
	}
	defer a.Close()

	lambda.Start(newHandler(httpadapter.New(a.Handler), a, appLog))
}
