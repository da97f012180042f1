package entity

type Player struct {
	Mark        string `json:"mark"`
	Provider    string `json:"provider,omitempty"`
	Model       string `json:"model,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}
