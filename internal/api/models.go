package api

// RegisterRequest holds the payload for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest holds the payload for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after successful registration or login.
type AuthResponse struct {
	UserID  string `json:"user_id"`
	Token   string `json:"token"`
	Premium bool   `json:"premium"`
}

// DecideRequest holds one keep/discard decision.
type DecideRequest struct {
	ConceptID int64  `json:"concept_id" validate:"required,gt=0"`
	Outcome   string `json:"outcome"    validate:"required,oneof=keep discard"`
}

// GradeRequest holds one review grade submission.
type GradeRequest struct {
	ConceptID int64  `json:"concept_id" validate:"required,gt=0"`
	Direction string `json:"direction"  validate:"required,oneof=front_to_back back_to_front"`
	Grade     string `json:"grade"      validate:"required,oneof=hard medium easy"`
	ElapsedMs int64  `json:"elapsed_ms" validate:"gte=0"`
}

// PostponeRequest pushes a concept's next review into the future.
type PostponeRequest struct {
	ConceptID int64  `json:"concept_id" validate:"required,gt=0"`
	Direction string `json:"direction"  validate:"required,oneof=front_to_back back_to_front"`
	Days      int    `json:"days"       validate:"required,gte=1,lte=30"`
}
