package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/controllers"
	"cupidwave/middleware"
)

// Services are the handlers' dependencies, one per area.
type Services struct {
	Profiles      controllers.ProfileService
	Uploads       controllers.UploadService
	Matchmaking   controllers.MatchmakingService
	Tornado       controllers.TornadoService
	Chat          controllers.ChatService
	Moderation    controllers.ModerationService
	Groups        controllers.GroupService
	Payments      controllers.PaymentService
	Push          controllers.PushService
	Notifications controllers.NotificationService
	Admin         controllers.AdminService
}

// RegisterRoutes sets up the routes served without a token
func RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/privacy-policy", PrivacyPolicyHandler).Methods("GET")
}

// NewRouter builds the complete API router. realtime, when set, is mounted at /socket.io/.
func NewRouter(svc Services, auth *middleware.Authenticator, realtime http.Handler, log *zap.SugaredLogger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(auth.Middleware)
	r.NotFoundHandler = http.HandlerFunc(controllers.NotFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(controllers.MethodNotAllowedHandler)

	RegisterRoutes(r)
	if realtime != nil {
		r.PathPrefix(middleware.SocketPath).Handler(realtime)
	}

	RegisterUserProfileRoutes(r, svc.Profiles, log)
	RegisterS3Routes(r, svc.Uploads, log)
	RegisterMatchRoutes(r, svc.Matchmaking, log)
	RegisterInteractionRoutes(r, svc.Tornado, log)
	RegisterChatRoutes(r, svc.Chat, log)
	RegisterActionRoutes(r, svc.Moderation, log)
	RegisterGroupRoutes(r, svc.Groups, log)
	RegisterPaymentRoutes(r, svc.Payments, log)
	RegisterPushRoutes(r, svc.Push, log)
	RegisterNotificationRoutes(r, svc.Notifications, log)
	RegisterAdminRoutes(r, svc.Admin, log)
	return r
}
