package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"ops-tools-backend/config"
	"ops-tools-backend/db"
	filesdbstorage "ops-tools-backend/lib/file-storage/storage"
	dbmodels "ops-tools-backend/models/db"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Архив выгрузок: файл сохраняется в бакет организации,
// метаданные - в БД. Выгрузка отдаётся клиенту и параллельно архивируется.

type Provider interface {
	SaveReport(ctx context.Context, spaceID, name, contentType string, file []byte) (id string, err error)
	GetFile(ctx context.Context, spaceID, fileID string) (rec *dbmodels.FileStorage, body []byte, err error)
	ListReports(spaceID string) ([]dbmodels.FileStorage, error)
}

var Instance Provider

func NewHandler(s3client *minio.Client) {
	Instance = impl{
		s3client: s3client,
		store:    filesdbstorage.NewInstance(db.DB),
	}
}

type impl struct {
	s3client *minio.Client
	store    filesdbstorage.Provider
}

func (i impl) SaveReport(ctx context.Context, spaceID, name, contentType string, file []byte) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	if err = i.makeSpaceBucket(ctx, spaceID); err != nil {
		return "", errors.Wrap(err, "ошибка создания бакета организации")
	}
	rec := dbmodels.FileStorage{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Name:        name,
		FileType:    dbmodels.FileTypeLeaveRegister,
		ContentType: contentType,
		Size:        int64(len(file)),
	}
	id, err = i.store.SaveFile(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения метаданных файла")
	}
	_, err = i.s3client.PutObject(ctx, i.getSpaceBucketName(spaceID), id,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения файла в хранилище")
	}
	logger.
		WithField("file_id", id).
		Info("выгрузка сохранена в архив")
	return id, nil
}

func (i impl) GetFile(ctx context.Context, spaceID, fileID string) (*dbmodels.FileStorage, []byte, error) {
	rec, err := i.store.GetByID(spaceID, fileID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.New("файл не найден")
	}
	object, err := i.s3client.GetObject(ctx, i.getSpaceBucketName(spaceID), fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return rec, body, nil
}

func (i impl) ListReports(spaceID string) ([]dbmodels.FileStorage, error) {
	return i.store.ListByType(spaceID, dbmodels.FileTypeLeaveRegister)
}

func (i impl) makeSpaceBucket(ctx context.Context, spaceID string) error {
	bucketName := i.getSpaceBucketName(spaceID)
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
}

func (i impl) getSpaceBucketName(spaceID string) string {
	return fmt.Sprintf("%s-%s", config.Conf.S3.BucketName, spaceID)
}
