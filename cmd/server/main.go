package main

import (
	"context"
	"log"
	"strings"

	"jangbu-backend/internal/client"
	"jangbu-backend/internal/config"
	"jangbu-backend/internal/database"
	"jangbu-backend/internal/extract"
	"jangbu-backend/internal/ingest"
	"jangbu-backend/internal/ledger"
	"jangbu-backend/internal/logger"
	"jangbu-backend/internal/ocr"
	"jangbu-backend/internal/stats"
	"jangbu-backend/internal/storage"
	"jangbu-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// .env는 로컬 개발용. 없어도 무방
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	lg := logger.WithComponent("server")

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatalf("데이터베이스 초기화 실패: %v", err)
	}
	st := store.NewGormStore(db)

	ctx := context.Background()

	// 외부 저장소. 설정이 없으면 업로드 없이 동작한다
	var uploader ingest.FileUploader
	if cfg.GoogleCredentials != "" && cfg.DriveFolderID != "" {
		drv, err := storage.NewDriveStorage(ctx, cfg.GoogleCredentials, cfg.DriveFolderID)
		if err != nil {
			lg.Warn().Err(err).Msg("Drive 저장소 초기화 실패, 파일 업로드 비활성화")
		} else {
			uploader = drv
		}
	}

	// OCR. 설정이 없으면 PDF 텍스트 레이어만 쓴다
	var recognizer ocr.TextRecognizer
	if cfg.GoogleCredentials != "" {
		switch cfg.OCRProvider {
		case "documentai":
			rec, err := ocr.NewDocumentAIRecognizer(ctx, ocr.DocumentAIConfig{
				ProjectID:       cfg.DocAIProjectID,
				Location:        cfg.DocAILocation,
				ProcessorID:     cfg.DocAIProcessorID,
				CredentialsFile: cfg.GoogleCredentials,
			})
			if err != nil {
				lg.Warn().Err(err).Msg("Document AI 초기화 실패, OCR 비활성화")
			} else {
				recognizer = rec
				defer rec.Close()
			}
		default:
			rec, err := ocr.NewVisionRecognizer(ctx, cfg.GoogleCredentials)
			if err != nil {
				lg.Warn().Err(err).Msg("Vision OCR 초기화 실패, OCR 비활성화")
			} else {
				recognizer = rec
				defer rec.Close()
			}
		}
	}

	// LLM 추출기. 설정이 없으면 정규식 추출만 쓴다
	var llm ingest.FieldExtractor
	if cfg.AzureOpenAIKey != "" {
		ex, err := extract.NewLLMExtractor(extract.LLMConfig{
			Endpoint:   cfg.AzureOpenAIEndpoint,
			APIKey:     cfg.AzureOpenAIKey,
			Deployment: cfg.AzureOpenAIDeployment,
		})
		if err != nil {
			lg.Warn().Err(err).Msg("LLM 추출기 초기화 실패, 정규식 추출만 사용")
		} else {
			llm = ex
		}
	}

	textExtractor := ingest.NewPDFTextExtractor(recognizer, logger.WithComponent("pdftext"))
	ingestor := ingest.New(st, uploader, textExtractor, llm, cfg.OwnerBizNo, logger.WithComponent("ingest"))

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // 통합 엑셀/스캔 PDF 업로드 허용
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			lg.Error().Err(err).Msg("처리되지 않은 오류")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "서버 오류가 발생했습니다.",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// 거래처
	api.Post("/clients", client.CreateClientHandler(db))
	api.Get("/clients", client.ListClientsHandler(db))
	api.Get("/clients/:id", client.GetClientHandler(db))
	api.Put("/clients/:id", client.UpdateClientHandler(db))
	api.Patch("/clients/:id", client.UpdateClientHandler(db))
	api.Delete("/clients/:id", client.DeleteClientHandler(db))

	// 매입 장부
	api.Post("/purchases", ledger.CreatePurchaseHandler(st))
	api.Get("/purchases", ledger.ListPurchasesHandler(st))
	api.Get("/purchases/:id", ledger.GetPurchaseHandler(st))
	api.Put("/purchases/:id", ledger.UpdatePurchaseHandler(st))
	api.Delete("/purchases/:id", ledger.DeletePurchaseHandler(st))

	// 매출 장부
	api.Post("/sales", ledger.CreateSaleHandler(st))
	api.Get("/sales", ledger.ListSalesHandler(st))
	api.Get("/sales/:id", ledger.GetSaleHandler(st))
	api.Put("/sales/:id", ledger.UpdateSaleHandler(st))
	api.Delete("/sales/:id", ledger.DeleteSaleHandler(st))

	// 세금계산서 수집
	api.Post("/invoices/upload-xlsx", ingest.UploadXLSXHandler(ingestor))
	api.Post("/invoices/upload-pdf", ingest.UploadPDFHandler(ingestor))
	api.Post("/extract", ingest.ExtractHandler(ingestor))

	// 집계
	api.Get("/stats", stats.StatsHandler(st))

	lg.Info().Str("port", cfg.HTTPPort).Msg("서버 시작")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
