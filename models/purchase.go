package models

// Product kinds
const (
	ProductPushCredits = "push_credits"
	ProductGoodie      = "goodie"
)

// Product is an entry of the premium catalog.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Credits     int    `json:"credits,omitempty"`
	AmountCents int64  `json:"amountCents"`
	Emoji       string `json:"emoji,omitempty"`
}

// Catalog lists everything that can be bought.
var Catalog = map[string]Product{
	"push_eclair_1":    {ID: "push_eclair_1", Name: "Push Éclair", Kind: ProductPushCredits, Credits: 1, AmountCents: 299},
	"push_eclair_5":    {ID: "push_eclair_5", Name: "Push Éclair x5", Kind: ProductPushCredits, Credits: 5, AmountCents: 1199},
	"push_eclair_10":   {ID: "push_eclair_10", Name: "Push Éclair x10", Kind: ProductPushCredits, Credits: 10, AmountCents: 1999},
	"goodie_rose":      {ID: "goodie_rose", Name: "Rose", Kind: ProductGoodie, AmountCents: 199, Emoji: "🌹"},
	"goodie_chocolate": {ID: "goodie_chocolate", Name: "Chocolates", Kind: ProductGoodie, AmountCents: 399, Emoji: "🍫"},
	"goodie_champagne": {ID: "goodie_champagne", Name: "Champagne", Kind: ProductGoodie, AmountCents: 999, Emoji: "🍾"},
}

// Purchase tracks one checkout session from creation to settlement.
type Purchase struct {
	SessionID   string `dynamodbav:"sessionId" json:"sessionId"`
	UserID      string `dynamodbav:"userId" json:"userId"`
	ProductID   string `dynamodbav:"productId" json:"productId"`
	Credits     int    `dynamodbav:"credits,omitempty" json:"credits,omitempty"`
	RecipientID string `dynamodbav:"recipientId,omitempty" json:"recipientId,omitempty"`
	AmountCents int64  `dynamodbav:"amountCents" json:"amountCents"`
	Currency    string `dynamodbav:"currency" json:"currency"`
	Status      string `dynamodbav:"status" json:"status"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// CheckoutResponse is returned when a session is created.
type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
