package models

// Table names. The configured prefix is prepended by the store.
const (
	ProfilesTable           = "profiles"
	MatchmakingAnswersTable = "matchmaking_answers"
	SwipesTable             = "swipes"
	ConversationsTable      = "conversations"
	ParticipantsTable       = "participants"
	MessagesTable           = "messages"
	ReactionsTable          = "reactions"
	BlocksTable             = "blocks"
	ReportsTable            = "reports"
	GroupProposalsTable     = "group_proposals"
	PurchasesTable          = "purchases"
	NotificationsTable      = "notifications"
)

// Secondary indexes
const (
	SwipeTargetIndex  = "target-index"
	BlockedIndex      = "blocked-index"
	ReportStatusIndex = "status-index"
)

// AllTables lists every table the service owns, in creation order.
var AllTables = []string{
	ProfilesTable,
	MatchmakingAnswersTable,
	SwipesTable,
	ConversationsTable,
	ParticipantsTable,
	MessagesTable,
	ReactionsTable,
	BlocksTable,
	ReportsTable,
	GroupProposalsTable,
	PurchasesTable,
	NotificationsTable,
}

// Swipe directions
const (
	SwipeLike = "like"
	SwipePass = "pass"
)

// Conversation kinds
const (
	ConversationDirect = "direct"
	ConversationGroup  = "group"
)

// Message kinds
const (
	MessageText   = "text"
	MessageImage  = "image"
	MessageVoice  = "voice"
	MessageSystem = "system"
	MessageGoodie = "goodie"
)

// Notification kinds
const (
	NotificationMatch         = "match"
	NotificationPushEclair    = "push_eclair"
	NotificationGoodie        = "goodie"
	NotificationGroupProposal = "group_proposal"
)

// Statuses shared by reports, proposals and purchases
const (
	StatusOpen      = "open"
	StatusResolved  = "resolved"
	StatusDismissed = "dismissed"
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusPaid      = "paid"
	StatusFailed    = "failed"
)

// Genders accepted on a profile
var Genders = []string{"woman", "man", "non_binary", "other"}

// Intents are the values a profile may state in lookingFor.
var Intents = []string{"serious", "casual", "friendship", "open"}

// ReportReasons are the reasons a user may pick when reporting a profile.
var ReportReasons = []string{"fake_profile", "harassment", "inappropriate_content", "spam", "underage", "other"}

// RoleAdmin marks a profile or token allowed to use the moderation views.
const RoleAdmin = "admin"

// Contains reports whether v is one of values.
func Contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
