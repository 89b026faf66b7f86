package minio

import (
	"errors"
	"net/http"

	"github.com/minio/minio-go/v7"
)

var (
	ErrUnknownAccount   = errors.New("minio: unknown storage account")
	ErrInvalidObjectKey = errors.New("minio: invalid object key")
	ErrObjectNotFound   = errors.New("minio: object not found")
	ErrBucketNotFound   = errors.New("minio: container not found")
	ErrAccessDenied     = errors.New("minio: access denied")
	ErrUnavailable      = errors.New("minio: storage unavailable")
)

// TranslateError maps S3 error responses to the package sentinels.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return ErrObjectNotFound
	case "NoSuchBucket":
		return ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return errors.Join(ErrAccessDenied, err)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrObjectNotFound
	case http.StatusForbidden:
		return errors.Join(ErrAccessDenied, err)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return errors.Join(ErrUnavailable, err)
	}
	return err
}
