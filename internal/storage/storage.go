package storage

import "context"

// FileStorage - 분류된 계산서 파일을 외부 저장소에 올린다.
// path는 "/BUSINESS/2025년 세금계산서/매입/..." 형태의 논리 경로.
type FileStorage interface {
	Upload(ctx context.Context, path string, data []byte) (url string, err error)
}
