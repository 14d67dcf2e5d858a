package ocr

import (
	"context"
	"fmt"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// VisionRecognizer - Google Cloud Vision DOCUMENT_TEXT_DETECTION 기반 구현
type VisionRecognizer struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionRecognizer - credentialsFile이 비어 있으면 기본 인증(ADC)을 시도한다.
func NewVisionRecognizer(ctx context.Context, credentialsFile string) (*VisionRecognizer, error) {
	const op = "NewVisionRecognizer"

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		if credentialsFile == "" {
			return nil, wrapErr(op, ErrMissingCredentials, err.Error())
		}
		return nil, wrapErr(op, err, "Vision 클라이언트 생성 실패")
	}
	return &VisionRecognizer{client: client}, nil
}

func (v *VisionRecognizer) Process(ctx context.Context, data []byte) (string, error) {
	const op = "VisionRecognizer.Process"

	if err := validatePDF(data); err != nil {
		return "", wrapErr(op, err, fmt.Sprintf("크기 %d바이트", len(data)))
	}

	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  data,
					MimeType: "application/pdf",
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return "", wrapErr(op, ErrOCRFailed, err.Error())
	}
	if len(resp.Responses) == 0 {
		return "", wrapErr(op, ErrOCRFailed, "Vision API 응답 없음")
	}
	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return "", wrapErr(op, ErrOCRFailed, fileResp.Error.Message)
	}

	var sb strings.Builder
	for i, page := range fileResp.Responses {
		if page.Error != nil {
			return "", wrapErr(op, ErrOCRFailed, fmt.Sprintf("%d페이지: %s", i+1, page.Error.Message))
		}
		if page.FullTextAnnotation == nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(page.FullTextAnnotation.Text)
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", wrapErr(op, ErrEmptyDocument, "")
	}
	return text, nil
}

func (v *VisionRecognizer) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}
