package dto

type AddCredentialsRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Note     string `json:"note"`
}

type UpdateCredentialsRequest struct {
	CurrentName string `json:"current_name"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Note        string `json:"note"`
}

type CredentialResponse struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Note     string `json:"note"`
}

type OwnerResponse struct {
	Owner string `json:"owner"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
