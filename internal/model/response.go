package model

// APIResponse is the success envelope used by operations that return a
// message rather than an entity (image upload, login).
type APIResponse struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}
