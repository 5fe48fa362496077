package http

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResp struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	UID     string `json:"uid"`
}

type loginResp struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	UID     string `json:"uid"`
	Email   string `json:"email"`
}
