// Package api defines the HTTP request and response payload types shared by
// the transport layer.
package api

// ErrorResponse is the common error payload returned on any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest is the request body for POST /user/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AccountResponse is the public account sub-document embedded in user
// payloads. It never carries credentials.
type AccountResponse struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// UserResponse is the payload returned by POST /user/signup.
type UserResponse struct {
	ID         uint            `json:"id"`
	Email      string          `json:"email"`
	Token      string          `json:"token"`
	Account    AccountResponse `json:"account"`
	Newsletter bool            `json:"newsletter"`
}

// SessionResponse is the payload returned by POST /user/login.
type SessionResponse struct {
	ID      uint            `json:"id"`
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// AttributeResponse is a single named facet of an offer. Attributes keep
// their insertion order and may repeat keys, so they are a list, not a map.
type AttributeResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OwnerResponse is the limited owner view embedded in offer payloads.
type OwnerResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// OfferResponse is the payload for a single offer.
type OfferResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Price       float64             `json:"price"`
	Attributes  []AttributeResponse `json:"attributes"`
	ImageURL    string              `json:"image_url"`
	CreatedAt   string              `json:"created_at"`
	Owner       *OwnerResponse      `json:"owner,omitempty"`
}

// ChargeRequest is the request body for POST /payment.
type ChargeRequest struct {
	Title       string  `json:"title" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	StripeToken string  `json:"stripeToken" binding:"required"`
}

// ChargeResponse is the payload returned by POST /payment.
type ChargeResponse struct {
	Status string `json:"status"`
}
