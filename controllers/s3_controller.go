package controllers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"cupidwave/services"
	"cupidwave/utils"
)

// UploadService is implemented by *services.S3Service.
type UploadService interface {
	PhotoUploadURL(ctx context.Context, userID, fileName, contentType string) (*services.UploadURL, error)
	VoiceUploadURL(ctx context.Context, userID, conversationID, fileName, contentType string) (*services.UploadURL, error)
	ReadURL(ctx context.Context, userID, key string) (string, error)
}

// S3Controller hands out presigned URLs for media
type S3Controller struct {
	Service UploadService
	Log     *zap.SugaredLogger
}

func NewS3Controller(service UploadService, log *zap.SugaredLogger) *S3Controller {
	return &S3Controller{Service: service, Log: log}
}

type uploadRequest struct {
	FileName       string `json:"fileName"`
	FileType       string `json:"fileType"`
	ConversationID string `json:"conversationId"`
}

func (c *S3Controller) decode(w http.ResponseWriter, r *http.Request) (*uploadRequest, bool) {
	var payload uploadRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		utils.WriteError(w, c.Log, err)
		return nil, false
	}
	if payload.FileName == "" || payload.FileType == "" {
		utils.WriteError(w, c.Log, utils.InvalidInput("fileName and fileType are required"))
		return nil, false
	}
	return &payload, true
}

// GeneratePhotoUploadURL presigns a profile photo upload
func (c *S3Controller) GeneratePhotoUploadURL(w http.ResponseWriter, r *http.Request) {
	payload, ok := c.decode(w, r)
	if !ok {
		return
	}
	upload, err := c.Service.PhotoUploadURL(r.Context(), callerID(r), payload.FileName, payload.FileType)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, upload)
}

// GenerateVoiceUploadURL presigns a voice message upload
func (c *S3Controller) GenerateVoiceUploadURL(w http.ResponseWriter, r *http.Request) {
	payload, ok := c.decode(w, r)
	if !ok {
		return
	}
	upload, err := c.Service.VoiceUploadURL(r.Context(), callerID(r), payload.ConversationID, payload.FileName, payload.FileType)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, upload)
}

// GetPresignedReadURL generates a presigned URL for reading S3 objects
func (c *S3Controller) GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	url, err := c.Service.ReadURL(r.Context(), callerID(r), payload.Key)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"url": url})
}
