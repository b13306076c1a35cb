package initializers

import (
	filestorage "ops-tools-backend/lib/file-storage"
	s3client "ops-tools-backend/s3"
)

func InitS3() {
	client, err := s3client.NewClient()
	if err != nil {
		panic(err.Error())
	}
	filestorage.NewHandler(client)
}
