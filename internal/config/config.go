package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string

	OwnerBizNo string // 사업자 본인의 등록번호. 매입/매출 판별 기준

	GoogleCredentials string // 서비스 계정 JSON 파일 경로
	DriveFolderID     string // 계산서를 업로드할 Drive 폴더
	OCRProvider       string // "vision" 또는 "documentai"
	DocAIProjectID    string
	DocAILocation     string
	DocAIProcessorID  string

	AzureOpenAIEndpoint   string
	AzureOpenAIKey        string
	AzureOpenAIDeployment string

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=jangbu port=5432 sslmode=disable"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		OwnerBizNo: getEnv("OWNER_BIZ_NO", ""),

		GoogleCredentials: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		DriveFolderID:     getEnv("DRIVE_FOLDER_ID", ""),
		OCRProvider:       getEnv("OCR_PROVIDER", "vision"),
		DocAIProjectID:    getEnv("DOCAI_PROJECT_ID", ""),
		DocAILocation:     getEnv("DOCAI_LOCATION", "us"),
		DocAIProcessorID:  getEnv("DOCAI_PROCESSOR_ID", ""),

		AzureOpenAIEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureOpenAIKey:        getEnv("AZURE_OPENAI_KEY", ""),
		AzureOpenAIDeployment: getEnv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	// 운영 전 점검
	if cfg.OwnerBizNo == "" {
		log.Println("[WARN] OWNER_BIZ_NO가 비어 있음. 모든 계산서가 '기타'로 분류된다.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=jangbu port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN 기본값 사용 중. 운영 환경에서는 반드시 별도 Postgres 접속 정보를 지정할 것.")
	}
	if cfg.GoogleCredentials == "" {
		log.Println("[WARN] GOOGLE_APPLICATION_CREDENTIALS가 비어 있음. OCR과 Drive 업로드가 비활성화된다.")
	}
	if cfg.DriveFolderID == "" {
		log.Println("[WARN] DRIVE_FOLDER_ID가 비어 있음. 파일 업로드를 건너뛴다.")
	}
	if cfg.AzureOpenAIKey == "" {
		log.Println("[WARN] AZURE_OPENAI_KEY가 비어 있음. 정규식 기반 추출만 사용한다.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
