package handler

// StatusResponse is the envelope for acknowledgements and errors.
type StatusResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type loginResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Role    string `json:"role"`
	UserID  int64  `json:"userId"`
}

type profileData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

type profileResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    profileData `json:"data"`
}

func ack(message string) StatusResponse {
	return StatusResponse{Status: 200, Message: message}
}
