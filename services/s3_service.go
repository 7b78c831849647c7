package services

import (
	"context"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"cupidwave/utils"
)

// Object key prefixes
const (
	PhotoPrefix = "profile-photos/"
	VoicePrefix = "voice-messages/"
)

// Presigner is implemented by *s3.PresignClient.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// UploadURL is a presigned PUT target and the key the client stores afterwards.
type UploadURL struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// S3Service hands out presigned URLs for profile photos and voice messages.
type S3Service struct {
	Presigner     Presigner
	Bucket        string
	TTL           time.Duration
	Conversations ConversationStore
	Log           *zap.SugaredLogger
	Now           func() time.Time
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func cleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFileChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	if len(name) > 100 {
		name = name[len(name)-100:]
	}
	return name
}

// PhotoUploadURL presigns an upload under the caller's photo folder.
func (s *S3Service) PhotoUploadURL(ctx context.Context, userID, fileName, contentType string) (*UploadURL, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, utils.InvalidInput("Only images can be uploaded as photos")
	}
	key := PhotoPrefix + userID + "/" + now(s.Now).UTC().Format("20060102150405") + "-" + cleanFileName(fileName)
	return s.presignPut(ctx, key, contentType)
}

// VoiceUploadURL presigns a voice message upload for a conversation the caller belongs to.
func (s *S3Service) VoiceUploadURL(ctx context.Context, userID, conversationID, fileName, contentType string) (*UploadURL, error) {
	if !strings.HasPrefix(contentType, "audio/") {
		return nil, utils.InvalidInput("Voice messages must be audio files")
	}
	if conversationID == "" {
		return nil, utils.InvalidInput("conversationId is required")
	}
	participant, err := s.Conversations.GetParticipant(ctx, userID, conversationID)
	if err != nil {
		return nil, dbError("load conversation", err)
	}
	if participant == nil {
		return nil, utils.NotFound("Conversation not found")
	}
	key := VoicePrefix + conversationID + "/" + now(s.Now).UTC().Format("20060102150405") + "-" + cleanFileName(fileName)
	return s.presignPut(ctx, key, contentType)
}

// ReadURL presigns a download of a stored photo or voice message. Voice
// messages are only readable by participants of their conversation.
func (s *S3Service) ReadURL(ctx context.Context, userID, key string) (string, error) {
	if key == "" || strings.Contains(key, "..") ||
		!(strings.HasPrefix(key, PhotoPrefix) || strings.HasPrefix(key, VoicePrefix)) {
		return "", utils.InvalidInput("Unknown media key")
	}
	if strings.HasPrefix(key, VoicePrefix) {
		conversationID, file, ok := strings.Cut(strings.TrimPrefix(key, VoicePrefix), "/")
		if !ok || conversationID == "" || file == "" {
			return "", utils.InvalidInput("Unknown media key")
		}
		participant, err := s.Conversations.GetParticipant(ctx, userID, conversationID)
		if err != nil {
			return "", dbError("load conversation", err)
		}
		if participant == nil {
			return "", utils.NotFound("Media not found")
		}
	}
	req, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.TTL))
	if err != nil {
		return "", utils.Internal("failed to presign download", err)
	}
	return req.URL, nil
}

func (s *S3Service) presignPut(ctx context.Context, key, contentType string) (*UploadURL, error) {
	req, err := s.Presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.TTL))
	if err != nil {
		return nil, utils.Internal("failed to presign upload", err)
	}
	s.Log.Debugw("presigned upload", "key", key)
	return &UploadURL{URL: req.URL, Key: key}, nil
}
