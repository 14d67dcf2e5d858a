package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"jangbu-backend/internal/logger"
)

// LLM 추출에 넘기는 텍스트 상한 (토큰 절약)
const maxPromptTextLen = 5000

// LLMExtractor: Azure OpenAI로 세금계산서 항목을 추출한다.
// 정규식 추출기가 커버하지 못하는 표 레이아웃을 보완하는 용도이며,
// 설정이 없으면 정규식 추출기만 사용한다.
type LLMExtractor struct {
	client     *openai.Client
	deployment string
	log        zerolog.Logger
}

// LLMConfig: Azure OpenAI 연결 설정
type LLMConfig struct {
	Endpoint   string // AZURE_OPENAI_ENDPOINT
	APIKey     string // AZURE_OPENAI_KEY
	Deployment string // AZURE_OPENAI_DEPLOYMENT
}

// NewLLMExtractor: Azure 설정으로 추출기를 생성
func NewLLMExtractor(cfg LLMConfig) (*LLMExtractor, error) {
	if cfg.Endpoint == "" || cfg.APIKey == "" || cfg.Deployment == "" {
		return nil, fmt.Errorf("azure openai 설정 누락 (ENDPOINT/KEY/DEPLOYMENT)")
	}

	azureCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	azureCfg.AzureModelMapperFunc = func(model string) string {
		return cfg.Deployment
	}

	return &LLMExtractor{
		client:     openai.NewClientWithConfig(azureCfg),
		deployment: cfg.Deployment,
		log:        logger.WithComponent("extract-llm"),
	}, nil
}

// llmFields: GPT 응답 JSON의 키 (프롬프트와 일치해야 한다)
type llmFields struct {
	Date        string `json:"date"`
	Supplier    string `json:"supplier"`
	Customer    string `json:"customer"`
	Item        string `json:"item"`
	Spec        string `json:"spec"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    string `json:"quantity"`
	SupplyValue string `json:"supplyValue"`
	Tax         string `json:"tax"`
	TotalAmount string `json:"totalAmount"`
}

const systemPrompt = "당신은 한국 전자세금계산서를 분석하는 전문가입니다. 항상 유효한 JSON만 반환합니다."

// ExtractFields: 세금계산서 텍스트에서 10개 항목 추출
func (e *LLMExtractor) ExtractFields(ctx context.Context, text string) (Fields, error) {
	if len(text) > maxPromptTextLen {
		text = text[:maxPromptTextLen]
	}

	prompt := buildPrompt(text)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   800,
	})
	if err != nil {
		return Fields{}, fmt.Errorf("azure openai 호출 실패: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Fields{}, fmt.Errorf("azure openai 응답이 비어 있음")
	}

	content := resp.Choices[0].Message.Content
	e.log.Debug().Int("length", len(content)).Msg("GPT 응답 수신")

	var parsed llmFields
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &parsed); err != nil {
		return Fields{}, fmt.Errorf("GPT 응답이 올바른 JSON 형식이 아님: %w", err)
	}

	return Fields{
		Date:          parsed.Date,
		Supplier:      parsed.Supplier,
		Receiver:      parsed.Customer,
		ItemName:      parsed.Item,
		Specification: parsed.Spec,
		Quantity:      parsed.Quantity,
		UnitPrice:     parsed.UnitPrice,
		SupplyValue:   parsed.SupplyValue,
		Tax:           parsed.Tax,
		Total:         parsed.TotalAmount,
	}, nil
}

func buildPrompt(text string) string {
	return `다음은 한국 전자세금계산서의 표 형식 텍스트입니다.

아래 10개 항목을 정확히 추출하여 JSON 형식으로만 반환하세요:

{
  "date": "작성일자 (YY-MM-DD)",
  "supplier": "공급자 상호명",
  "customer": "수요자 상호명",
  "item": "품목명",
  "spec": "규격",
  "unitPrice": "단가",
  "quantity": "수량",
  "supplyValue": "공급가액",
  "tax": "세액",
  "totalAmount": "합계금액"
}

**중요 지침:**
- 반드시 위의 영문 키 이름을 사용하세요
- JSON 객체만 반환하고 설명은 절대 포함하지 마세요
- 찾을 수 없는 항목은 빈 문자열 ""로 설정
- 숫자는 쉼표 포함하여 문자열로 반환 (예: "100,000")
- 마이너스 금액은 "-" 기호를 포함한 문자열로 정확히 표현 (예: "-1,000,000")
- 공급자와 수요자는 단어 간 간격이 클 경우 앞쪽 회사명까지만 추출하고, 성명은 제외
- "ea" 앞에 있는 자연수는 수량으로 추출 (예: "188ea" → "188")

세금계산서 텍스트:
` + text + `

JSON만 반환:`
}

// stripCodeFence: ```json ... ``` 펜스를 벗겨낸다
func stripCodeFence(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
