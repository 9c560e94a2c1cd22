package dto

type PresignRequest struct {
	Filename    string `json:"filename" validate:"required"`
	Size        int64  `json:"size" validate:"required"`
	MimeType    string `json:"mimeType" validate:"required"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

type PresignResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Key       string `json:"key"`
	Filename  string `json:"filename"`
	MimeType  string `json:"mimeType"`
	Size      int64  `json:"size"`
	ExpiresIn int    `json:"expiresIn"`
}

type CompleteRequest struct {
	Key string `json:"key" validate:"required"`
}

type CompleteResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}
