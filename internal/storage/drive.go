package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveStorage - Google Drive 기반 FileStorage 구현.
// 논리 경로의 디렉터리 구조를 rootFolderID 아래 폴더 트리로 재현한다.
type DriveStorage struct {
	svc          *drive.Service
	rootFolderID string

	mu      sync.Mutex
	folders map[string]string // 논리 경로 -> 폴더 ID 캐시
}

func NewDriveStorage(ctx context.Context, credentialsFile, rootFolderID string) (*DriveStorage, error) {
	const op = "NewDriveStorage"

	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%s: 인증 파일 읽기 실패: %w", op, err)
	}
	config, err := google.JWTConfigFromJSON(creds, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("%s: 인증 정보 파싱 실패: %w", op, err)
	}
	svc, err := drive.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%s: Drive 서비스 생성 실패: %w", op, err)
	}

	return &DriveStorage{
		svc:          svc,
		rootFolderID: rootFolderID,
		folders:      make(map[string]string),
	}, nil
}

func (d *DriveStorage) Upload(ctx context.Context, logicalPath string, data []byte) (string, error) {
	const op = "DriveStorage.Upload"

	dir, name := path.Split(logicalPath)
	parentID, err := d.ensureFolder(ctx, dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	file := &drive.File{
		Name:    name,
		Parents: []string{parentID},
	}
	created, err := d.svc.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%s: 파일 업로드 실패: %w", op, err)
	}

	// 링크 공유를 위해 읽기 권한 부여
	_, err = d.svc.Permissions.Create(created.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%s: 권한 설정 실패: %w", op, err)
	}

	return created.WebViewLink, nil
}

// ensureFolder - 논리 경로의 각 구간에 해당하는 Drive 폴더를 찾거나 만든다.
func (d *DriveStorage) ensureFolder(ctx context.Context, dir string) (string, error) {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return d.rootFolderID, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.folders[dir]; ok {
		return id, nil
	}

	parentID := d.rootFolderID
	built := ""
	for _, seg := range strings.Split(dir, "/") {
		if built == "" {
			built = seg
		} else {
			built = built + "/" + seg
		}
		if id, ok := d.folders[built]; ok {
			parentID = id
			continue
		}

		id, err := d.findOrCreateFolder(ctx, parentID, seg)
		if err != nil {
			return "", err
		}
		d.folders[built] = id
		parentID = id
	}
	return parentID, nil
}

func (d *DriveStorage) findOrCreateFolder(ctx context.Context, parentID, name string) (string, error) {
	query := fmt.Sprintf(
		"name = '%s' and '%s' in parents and mimeType = 'application/vnd.google-apps.folder' and trashed = false",
		strings.ReplaceAll(name, "'", "\\'"), parentID,
	)
	list, err := d.svc.Files.List().Q(query).Fields("files(id)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("폴더 검색 실패 (%s): %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder, err := d.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: "application/vnd.google-apps.folder",
		Parents:  []string{parentID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("폴더 생성 실패 (%s): %w", name, err)
	}
	return folder.Id, nil
}
