package proto

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse carries a fresh token pair.
type AuthResponse struct {
	Message      string `json:"message,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UploadRequest carries the whole file; Content is base64 on the wire.
type UploadRequest struct {
	Name       string `json:"name"`
	Visibility string `json:"visibility"`
	Content    []byte `json:"content"`
	IfAbsent   bool   `json:"if_absent,omitempty"`
}

type ListRequest struct{}

type SearchRequest struct {
	Query string `json:"q"`
}

type DeleteRequest struct {
	Name string `json:"filename"`
}

type DownloadRequest struct {
	Name string `json:"filename"`
}

type AckResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"`
}

type FileEntry struct {
	Name       string    `json:"name"`
	Owner      string    `json:"owner"`
	SizeBytes  int64     `json:"sizeBytes"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Visibility string    `json:"visibility"`
}

type FileList struct {
	Files []FileEntry `json:"files"`
}

type DownloadResponse struct {
	File    FileEntry `json:"file"`
	Content []byte    `json:"content"`
}
