package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config armazena todas as configurações da API de cadastro.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string
	LogFormat   string

	// Banco de Dados (arquivo SQLite local)
	DatabasePath string
	DBTimeout    time.Duration

	// Sincronização do snapshot com o S3
	SnapshotSyncEnabled bool
	S3Bucket            string
	DatabaseKey         string
	AWSRegion           string
	S3Endpoint          string // Opcional: MinIO/LocalStack
	S3AccessKeyID       string
	S3SecretAccessKey   string

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting (Redis vazio desativa)
	RedisAddr            string
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	CORSAllowedOrigins []string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		// 2. Banco de Dados
		DatabasePath: getEnv("DATABASE_PATH", "/tmp/h2db.db"),
		DBTimeout:    getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		// 3. Snapshot (S3)
		SnapshotSyncEnabled: getBoolEnv("SNAPSHOT_SYNC_ENABLED", true),
		S3Bucket:            getEnv("S3_BUCKET_NAME", "pessoa-cadastro-db"),
		DatabaseKey:         getEnv("DATABASE_KEY", "h2db.db"),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint:          getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:       getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:   getEnv("S3_SECRET_ACCESS_KEY", ""),

		// 4. Segurança (JWT)
		// mustGetEnv garante que a aplicação não inicie sem o segredo de assinatura
		JWTSecretKey: mustGetEnv("JWT_SECRET"),

		// 5. Rate Limiting
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	expiry, err := ParseExpiration(getEnv("JWT_EXPIRATION", "1d"))
	if err != nil {
		log.Printf("⚠️ Aviso: %v. Usando padrão (1d).", err)
		expiry = 24 * time.Hour
	}
	cfg.TokenExpiry = expiry

	return cfg
}

// ParseExpiration interpreta a validade do token: "1d", durações Go ("12h") ou segundos ("3600").
func ParseExpiration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("validade do token vazia")
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("validade do token inválida: %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("validade do token inválida: %q", value)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("validade do token inválida: %q", value)
	}
	return d, nil
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão (variável vazia conta como ausente).
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getBoolEnv aceita os formatos de strconv.ParseBool ("true", "1", "false", ...).
func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é booleano. Usando padrão (%t).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
