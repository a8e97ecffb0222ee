// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"mgepcar/internal/middleware"
	"mgepcar/internal/models"
)

const (
	// maxUploadSize is the maximum allowed photo upload size (50 MB).
	maxUploadSize = 50 << 20

	// thumbMaxWidth is the maximum thumbnail width in pixels.
	thumbMaxWidth = 400

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80

	// maxImagePixels caps the number of pixels to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	maxImagePixels = 100_000_000

	// presignExpiry is how long a presigned URL for private files is valid.
	presignExpiry = 1 * time.Hour

	// mediaPageSize is how many photos a library page returns.
	mediaPageSize = 50
)

// allowedPhotoTypes defines the MIME types accepted for vehicle photos.
// Documents and vector formats are rejected; the gallery only ever
// displays raster images.
var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// thumbableTypes are image types that support thumbnail generation.
// GIF is excluded to preserve animation.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MediaList serves a page of the photo library with resolved URLs.
func (a *Admin) MediaList(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	items, err := a.mediaStore.List(mediaPageSize, (page-1)*mediaPageSize)
	if err != nil {
		slog.Error("media list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load photos")
		return
	}

	type photoView struct {
		models.Media
		URL      string `json:"url"`
		ThumbURL string `json:"thumb_url,omitempty"`
	}
	views := make([]photoView, 0, len(items))
	for _, m := range items {
		pv := photoView{Media: m}
		if m.Bucket == a.storageClient.PublicBucket() {
			pv.URL = a.storageClient.FileURL(m.S3Key)
			if m.ThumbS3Key != nil {
				pv.ThumbURL = a.storageClient.FileURL(*m.ThumbS3Key)
			}
		}
		views = append(views, pv)
	}

	writeJSON(w, http.StatusOK, map[string]any{"photos": views, "page": page})
}

// MediaUpload accepts a multipart photo upload, stores the original and a
// generated thumbnail in the bucket, and records the metadata row.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	// Limit request body to maxUploadSize plus some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 50 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 50 MB")
		return
	}

	// Detect content type by sniffing the first 512 bytes; the client's
	// declared type is not trusted.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	if !allowedPhotoTypes[contentType] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file type %q is not allowed", contentType))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		return
	}

	// Photos referenced by listings go to the public bucket; paperwork
	// scans and other internal files go private.
	bucket := a.storageClient.PublicBucket()
	if r.FormValue("bucket") == "private" {
		bucket = a.storageClient.PrivateBucket()
	}

	now := time.Now()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	s3Key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext)

	// Read the entire file into memory for upload and thumbnail generation.
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	ctx := r.Context()
	if err := a.storageClient.Upload(ctx, bucket, s3Key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", s3Key)
		writeError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	var thumbKey *string
	if thumbableTypes[contentType] {
		thumbData, err := generateThumbnail(bytes.NewReader(fileBytes), thumbMaxWidth)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "key", s3Key)
		} else if thumbData != nil {
			tk := fmt.Sprintf("media/%d/%02d/%s_thumb.jpg", now.Year(), now.Month(), fileID)
			if err := a.storageClient.Upload(ctx, bucket, tk, "image/jpeg", bytes.NewReader(thumbData), int64(len(thumbData))); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbKey = &tk
			}
		}
	}

	created, err := a.mediaStore.Create(&models.Media{
		Filename:     fileID + ext,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    int64(len(fileBytes)),
		Bucket:       bucket,
		S3Key:        s3Key,
		ThumbS3Key:   thumbKey,
		UploaderID:   sess.UserID,
	})
	if err != nil {
		slog.Error("media db insert failed", "error", err, "key", s3Key)
		writeError(w, http.StatusInternalServerError, "failed to save file metadata")
		return
	}

	var thumbURL string
	if created.ThumbS3Key != nil {
		thumbURL = a.storageClient.FileURL(*created.ThumbS3Key)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        created.ID,
		"url":       a.storageClient.FileURL(created.S3Key),
		"thumb_url": thumbURL,
		"filename":  created.OriginalName,
		"size":      created.HumanSize(),
		"type":      created.ContentType,
	})
}

// MediaDelete removes a photo from both the database and the bucket.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	media, err := a.mediaStore.FindByID(id)
	if err != nil {
		slog.Error("media lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete photo")
		return
	}
	if media == nil {
		writeError(w, http.StatusNotFound, "photo not found")
		return
	}

	if err := a.mediaStore.Delete(id); err != nil {
		slog.Error("media db delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete photo")
		return
	}

	// Bucket cleanup is best-effort; the metadata row is already gone.
	ctx := r.Context()
	if err := a.storageClient.Delete(ctx, media.Bucket, media.S3Key); err != nil {
		slog.Warn("s3 original delete failed", "error", err, "key", media.S3Key)
	}
	if media.ThumbS3Key != nil {
		if err := a.storageClient.Delete(ctx, media.Bucket, *media.ThumbS3Key); err != nil {
			slog.Warn("s3 thumbnail delete failed", "error", err, "key", *media.ThumbS3Key)
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// MediaServe resolves a photo to its URL. Public files redirect to the
// direct bucket URL; private files get a time-limited presigned URL.
func (a *Admin) MediaServe(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	media, err := a.mediaStore.FindByID(id)
	if err != nil {
		slog.Error("media lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load photo")
		return
	}
	if media == nil {
		writeError(w, http.StatusNotFound, "photo not found")
		return
	}

	if media.Bucket == a.storageClient.PublicBucket() {
		http.Redirect(w, r, a.storageClient.FileURL(media.S3Key), http.StatusFound)
		return
	}

	presigned, err := a.storageClient.PresignedURL(r.Context(), media.Bucket, media.S3Key, presignExpiry)
	if err != nil {
		slog.Error("presign failed", "error", err, "key", media.S3Key)
		writeError(w, http.StatusInternalServerError, "could not load photo")
		return
	}
	http.Redirect(w, r, presigned, http.StatusFound)
}

// generateThumbnail creates a JPEG thumbnail from an image, constrained
// to maxWidth while preserving aspect ratio. Returns nil if the image is
// already smaller than maxWidth.
func generateThumbnail(src io.Reader, maxWidth int) ([]byte, error) {
	// Decode config first to check dimensions without a full decode.
	imgCfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if int64(imgCfg.Width)*int64(imgCfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", imgCfg.Width, imgCfg.Height, maxImagePixels)
	}

	if imgCfg.Width <= maxWidth {
		return nil, nil
	}

	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek: %w", err)
		}
	} else {
		return nil, fmt.Errorf("source does not support seeking")
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	newWidth := maxWidth
	newHeight := int(float64(bounds.Dy()) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}

// extensionFromType returns a file extension for the accepted MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
