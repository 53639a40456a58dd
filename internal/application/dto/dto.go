package dto

import "time"

// ========== ACCESS DTOs ==========

// AccessDecisionResponse represents an access check or consume result
type AccessDecisionResponse struct {
	Allowed         bool   `json:"allowed"`
	Reason          string `json:"reason"`
	GrantID         string `json:"grant_id,omitempty"`
	AccessCount     int    `json:"access_count,omitempty"`
	DaysUntilExpiry *int   `json:"days_until_expiry"`
}

// GrantAccessRequest represents an admin grant request
type GrantAccessRequest struct {
	UserID     string     `json:"user_id" binding:"required,uuid"`
	ContentID  string     `json:"content_id" binding:"required,uuid"`
	TierID     *string    `json:"tier_id,omitempty" binding:"omitempty,uuid"`
	AccessType string     `json:"access_type" binding:"required"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Unlimited  bool       `json:"is_unlimited"`
}

// RevokeAccessRequest represents a revoke request
type RevokeAccessRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// GrantResponse represents a content access grant
type GrantResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	ContentID      string     `json:"content_id"`
	TierID         string     `json:"tier_id,omitempty"`
	AccessType     string     `json:"access_type"`
	Status         string     `json:"status"`
	GrantedAt      time.Time  `json:"granted_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	RevokedAt      *time.Time `json:"revoked_at,omitempty"`
	RevokeReason   string     `json:"revoke_reason,omitempty"`
	IsUnlimited    bool       `json:"is_unlimited"`
	AccessCount    int        `json:"access_count"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
}

// ========== TIER DTOs ==========

// CreateTierRequest represents a tier creation request. Money is sent as decimal strings.
type CreateTierRequest struct {
	Name               string     `json:"name" binding:"required"`
	Description        string     `json:"description"`
	Price              string     `json:"price" binding:"required"`
	BillingCycle       string     `json:"billing_cycle" binding:"required"`
	MaxSubscribers     int        `json:"max_subscribers"`
	IsPopular          bool       `json:"is_popular"`
	DiscountPercentage *string    `json:"discount_percentage,omitempty"`
	DiscountValidUntil *time.Time `json:"discount_valid_until,omitempty"`
}

// AddDiscountRequest represents a discount on a tier
type AddDiscountRequest struct {
	Percentage string    `json:"percentage" binding:"required"`
	ValidUntil time.Time `json:"valid_until" binding:"required"`
}

// TierResponse represents a subscription tier
type TierResponse struct {
	ID                 string     `json:"id"`
	CreatorProfileID   string     `json:"creator_profile_id"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	Price              string     `json:"price"`
	BillingCycle       string     `json:"billing_cycle"`
	MaxSubscribers     int        `json:"max_subscribers"`
	CurrentSubscribers int        `json:"current_subscribers"`
	Status             string     `json:"status"`
	IsPopular          bool       `json:"is_popular"`
	DiscountPercentage string     `json:"discount_percentage,omitempty"`
	DiscountValidUntil *time.Time `json:"discount_valid_until,omitempty"`
}

// TierPriceResponse represents the effective price of a tier
type TierPriceResponse struct {
	TierID         string `json:"tier_id"`
	BasePrice      string `json:"base_price"`
	EffectivePrice string `json:"effective_price"`
	HasDiscount    bool   `json:"has_discount"`
	BillingCycle   string `json:"billing_cycle"`
}

// TierRevenueResponse represents the projected revenue of a tier
type TierRevenueResponse struct {
	TierID             string `json:"tier_id"`
	BillingCycle       string `json:"billing_cycle"`
	CurrentSubscribers int    `json:"current_subscribers"`
	MonthlyNormalized  string `json:"monthly_normalized"`
	NativeCycleTotal   string `json:"native_cycle_total"`
}

// ========== SUBSCRIPTION DTOs ==========

// CreateSubscriptionRequest represents a subscribe request
type CreateSubscriptionRequest struct {
	TierID    string `json:"tier_id" binding:"required,uuid"`
	AutoRenew *bool  `json:"auto_renew,omitempty"`
	IsGift    bool   `json:"is_gift"`
}

// CancelSubscriptionRequest represents a cancel subscription request
type CancelSubscriptionRequest struct {
	Reason string `json:"reason,omitempty"`
	Note   string `json:"note,omitempty"`
}

// SubscriptionResponse represents a subscription
type SubscriptionResponse struct {
	ID                 string     `json:"id"`
	SubscriberID       string     `json:"subscriber_id"`
	TierID             string     `json:"tier_id"`
	Status             string     `json:"status"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            time.Time  `json:"end_date"`
	NextBillingDate    *time.Time `json:"next_billing_date,omitempty"`
	AutoRenew          bool       `json:"auto_renew"`
	Amount             string     `json:"amount"`
	DiscountAmount     string     `json:"discount_amount"`
	FinalAmount        string     `json:"final_amount"`
	IsGift             bool       `json:"is_gift"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
}

// SubscriptionDetailResponse adds the derived billing figures
type SubscriptionDetailResponse struct {
	SubscriptionResponse
	EffectivelyActive bool   `json:"effectively_active"`
	DaysUntilExpiry   int    `json:"days_until_expiry"`
	NetPaid           string `json:"net_paid"`
}

// CreateSubscriptionResponse carries the pending subscription and its payment
type CreateSubscriptionResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	Payment      PaymentResponse      `json:"payment"`
}

// ========== PAYMENT DTOs ==========

// CreatePaymentRequest represents a tip, donation or one-time payment
type CreatePaymentRequest struct {
	CreatorProfileID string `json:"creator_profile_id" binding:"required,uuid"`
	Type             string `json:"type" binding:"required"`
	Amount           string `json:"amount" binding:"required"`
	TaxAmount        string `json:"tax_amount,omitempty"`
	FeeAmount        string `json:"fee_amount,omitempty"`
	Currency         string `json:"currency,omitempty"`
}

// RefundPaymentRequest represents a refund request
type RefundPaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	Reason string `json:"reason,omitempty"`
}

// PaymentResponse represents a payment
type PaymentResponse struct {
	ID                 string     `json:"id"`
	TransactionID      string     `json:"transaction_id"`
	UserID             string     `json:"user_id"`
	SubscriptionID     string     `json:"subscription_id,omitempty"`
	RecipientProfileID string     `json:"recipient_profile_id,omitempty"`
	Type               string     `json:"type"`
	Status             string     `json:"status"`
	Amount             string     `json:"amount"`
	TaxAmount          string     `json:"tax_amount"`
	FeeAmount          string     `json:"fee_amount"`
	NetAmount          string     `json:"net_amount"`
	RefundedAmount     string     `json:"refunded_amount"`
	Currency           string     `json:"currency"`
	ProcessedAt        *time.Time `json:"processed_at,omitempty"`
	RefundedAt         *time.Time `json:"refunded_at,omitempty"`
}

// ========== CREATOR DTOs ==========

// ApplyEarningsRequest represents an admin earnings adjustment
type ApplyEarningsRequest struct {
	Delta string `json:"delta" binding:"required"`
}

// CreateCreatorProfileRequest represents a creator profile sign-up
type CreateCreatorProfileRequest struct {
	Category string `json:"category,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// DeactivateCreatorRequest represents an admin deactivation
type DeactivateCreatorRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// VerificationRequest represents an admin verification decision
type VerificationRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreatorProfileResponse represents a creator's profile and figures
type CreatorProfileResponse struct {
	ID                 string `json:"id"`
	UserID             string `json:"user_id"`
	Category           string `json:"category"`
	Bio                string `json:"bio,omitempty"`
	IsVerified         bool   `json:"is_verified"`
	VerificationStatus string `json:"verification_status"`
	IsActive           bool   `json:"is_active"`
	DeactivationReason string `json:"deactivation_reason,omitempty"`
	TotalEarnings      string `json:"total_earnings"`
	MonthlyEarnings    string `json:"monthly_earnings"`
	TotalSubscribers   int    `json:"total_subscribers"`
	TotalContent       int    `json:"total_content"`
}

// ========== CONTENT DTOs ==========

// CreateContentRequest represents a content creation request
type CreateContentRequest struct {
	Title      string  `json:"title" binding:"required"`
	Type       string  `json:"type,omitempty"`
	Visibility string  `json:"visibility,omitempty"`
	TierID     *string `json:"tier_id,omitempty" binding:"omitempty,uuid"`
}

// ContentResponse represents a piece of content
type ContentResponse struct {
	ID               string     `json:"id"`
	CreatorProfileID string     `json:"creator_profile_id"`
	Title            string     `json:"title"`
	Type             string     `json:"type"`
	Status           string     `json:"status"`
	Visibility       string     `json:"visibility"`
	RequiredTierID   string     `json:"required_tier_id,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
}

// ========== ERROR DTOs ==========

// ErrorDetail represents a detailed error
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse represents a validation error response
type ValidationErrorResponse struct {
	Error   string        `json:"error"`
	Details []ErrorDetail `json:"details"`
}
