package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/controllers"
)

// RegisterS3Routes sets up routes for presigned media URLs
func RegisterS3Routes(r *mux.Router, service controllers.UploadService, log *zap.SugaredLogger) {
	controller := controllers.NewS3Controller(service, log)

	uploadRouter := r.PathPrefix("/api/uploads").Subrouter()
	uploadRouter.HandleFunc("/photo", controller.GeneratePhotoUploadURL).Methods("POST")
	uploadRouter.HandleFunc("/voice", controller.GenerateVoiceUploadURL).Methods("POST")
	uploadRouter.HandleFunc("/read", controller.GetPresignedReadURL).Methods("POST")
}
