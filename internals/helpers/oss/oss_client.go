// file: internals/helpers/oss/oss_client.go
package helper

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Batas ukuran upload lampiran dokumen (PDF/scan), guard ringan di controller.
const MaxUploadSize = int64(20 * 1024 * 1024)

var allowedExt = map[string]struct{}{
	".pdf": {}, ".png": {}, ".jpg": {}, ".jpeg": {}, ".webp": {},
	".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {},
}

type OSSService struct {
	Bucket    *oss.Bucket
	BucketURL string // https://<bucket>.<endpoint>
	Prefix    string // contoh: "documents/"
}

func getEnvTrim(k string) string { return strings.TrimSpace(os.Getenv(k)) }

// NewOSSServiceFromEnv buat client dari ENV ALI_OSS_*. prefix opsional.
func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnvTrim("ALI_OSS_ENDPOINT")
	keyID := getEnvTrim("ALI_OSS_ACCESS_KEY")
	secret := getEnvTrim("ALI_OSS_SECRET_KEY")
	bucketName := getEnvTrim("ALI_OSS_BUCKET")

	if endpoint == "" || keyID == "" || secret == "" || bucketName == "" {
		return nil, fmt.Errorf("oss: ENV ALI_OSS_* belum lengkap")
	}

	cli, err := oss.New(endpoint, keyID, secret)
	if err != nil {
		return nil, err
	}
	bucket, err := cli.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return &OSSService{
		Bucket:    bucket,
		BucketURL: fmt.Sprintf("https://%s.%s", bucketName, host),
		Prefix:    prefix,
	}, nil
}

// UploadDocumentFile simpan lampiran ke
// <prefix><company_id>/<slot>/<uuid><ext> dan kembalikan public URL.
// Tidak ada re-encode: lampiran dokumen disimpan apa adanya.
func (s *OSSService) UploadDocumentFile(ctx context.Context, companyID uuid.UUID, slot string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if companyID == uuid.Nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "company_id tidak valid")
	}
	if fh.Size > MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "File terlalu besar (maks 20MB)")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExt[ext]; !ok {
		return "", fiber.NewError(fiber.StatusBadRequest, "Tipe file tidak didukung: "+ext)
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := fmt.Sprintf("%s%s/%s/%s%s", s.Prefix, companyID.String(), slot, uuid.NewString(), ext)

	opts := []oss.Option{oss.ContentType(contentTypeByExt(ext)), oss.WithContext(ctx)}
	if err := s.Bucket.PutObject(key, src, opts...); err != nil {
		return "", err
	}

	return s.BucketURL + "/" + key, nil
}

// DeleteByPublicURL hapus objek berdasarkan public URL yang tersimpan di DB.
func (s *OSSService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key := strings.TrimPrefix(publicURL, s.BucketURL+"/")
	if key == "" || key == publicURL {
		return fmt.Errorf("oss: URL %q bukan milik bucket ini", publicURL)
	}
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func contentTypeByExt(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xls":
		return "application/vnd.ms-excel"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// timeoutCtx helper untuk operasi OSS yang dipanggil tanpa deadline.
func TimeoutCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 30*time.Second)
}
