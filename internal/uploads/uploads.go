// Package uploads hands out presigned S3 PUT URLs so browsers upload issue
// and donation photos straight to the bucket.
package uploads

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/respond"
	"github.com/CityPulse/CityPulse-Backend/internal/validate"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"
)

type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// NewPresigner builds an S3 presign client from the default AWS credential
// chain.
func NewPresigner(ctx context.Context, region string) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewPresignClient(s3.NewFromConfig(cfg)), nil
}

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type Handler struct {
	// Presigner is nil when no bucket is configured.
	Presigner  Presigner
	Bucket     string
	PublicBase string
	TTL        time.Duration
}

type photoRequest struct {
	ContentType string `json:"contentType" validate:"required,oneof=image/jpeg image/png image/webp"`
	Purpose     string `json:"purpose" validate:"omitempty,oneof=issue donation"`
}

type photoResponse struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	PublicURL string `json:"publicURL"`
	ExpiresIn int    `json:"expiresIn"`
}

// ObjectKey names an upload: <purpose>/<subject>/<ulid>.<ext>.
func ObjectKey(purpose, subject, contentType string) string {
	if purpose == "" {
		purpose = "issue"
	}
	return fmt.Sprintf("%ss/%s/%s.%s", purpose, subject, ulid.Make().String(), extensions[contentType])
}

func (h *Handler) PresignPhoto(w http.ResponseWriter, r *http.Request) {
	s, err := auth.RequireSession(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if h.Presigner == nil {
		respond.Message(w, http.StatusServiceUnavailable, "Photo uploads are not configured")
		return
	}

	var req photoRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	key := ObjectKey(req.Purpose, s.SubjectID, req.ContentType)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(h.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
		Metadata:    map[string]string{"uploaded-by": s.SubjectID},
	}
	signed, err := h.Presigner.PresignPutObject(r.Context(), input, func(o *s3.PresignOptions) { o.Expires = h.TTL })
	if err != nil {
		respond.Error(w, r, fmt.Errorf("presign %s: %w", key, err))
		return
	}

	respond.JSON(w, http.StatusOK, photoResponse{
		URL:       signed.URL,
		Key:       key,
		PublicURL: h.publicURL(key),
		ExpiresIn: int(h.TTL.Seconds()),
	})
}

func (h *Handler) publicURL(key string) string {
	if h.PublicBase != "" {
		return strings.TrimRight(h.PublicBase, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", h.Bucket, key)
}

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/photo", h.PresignPhoto)
	return r
}
