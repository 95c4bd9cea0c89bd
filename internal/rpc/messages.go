package rpc

import "time"

type PingResponse struct {
	Status string `json:"status"`
}

// CredentialsRequest is used by both Register and SignIn.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInWithCredentialRequest struct {
	IDToken string `json:"id_token"`
}

// AuthResponse describes the signed-in account and its token pair.
type AuthResponse struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type RenameCategoryRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReorderCategoriesRequest carries the complete desired order of the
// caller's categories.
type ReorderCategoriesRequest struct {
	IDs []string `json:"ids"`
}

type DeleteCategoryRequest struct {
	ID string `json:"id"`
}

type Snip struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Title      string    `json:"title"`
	Code       string    `json:"code"`
	Timestamp  time.Time `json:"timestamp"`
}

// CategoryRef addresses a category either by id or, when ID is empty, by name.
type CategoryRef struct {
	CategoryID   string `json:"category_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

type CreateSnipRequest struct {
	CategoryRef
	Title string `json:"title"`
	Code  string `json:"code"`
}

type ListSnipsRequest struct {
	CategoryRef
}

type ListSnipsResponse struct {
	Snips []Snip `json:"snips"`
}

// UpdateSnipRequest identifies the snip by ID, or by Timestamp within the
// referenced category when ID is empty.
type UpdateSnipRequest struct {
	CategoryRef
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Title     string    `json:"title"`
	Code      string    `json:"code"`
}

// DeleteSnipRequest identifies the snip by ID, or by the exact
// (Title, Code, Timestamp) triple within the referenced category.
type DeleteSnipRequest struct {
	CategoryRef
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

type ExportCategoryRequest struct {
	CategoryID string `json:"category_id"`
}

type ExportCategoryResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}
