package models

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Question  string `json:"question"`
	UseSearch bool   `json:"use_search"`
}

// AskResponse is the reply of POST /ask. Any Status other than
// StatusSuccess carries an error description in Answer.
type AskResponse struct {
	Status string `json:"status"`
	Answer string `json:"answer"`
}

func (r AskResponse) Succeeded() bool {
	return r.Status == StatusSuccess
}

func Success(answer string) AskResponse {
	return AskResponse{Status: StatusSuccess, Answer: answer}
}

func Failure(answer string) AskResponse {
	return AskResponse{Status: StatusError, Answer: answer}
}
