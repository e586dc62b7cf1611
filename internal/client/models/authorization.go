package models

// Authorization is the server's answer to a presigned-url request: where to
// PUT the bytes, the resulting object key and the headers to replay.
type Authorization struct {
	UploadURL string            `json:"uploadUrl"`
	Key       string            `json:"key"`
	Headers   map[string]string `json:"headers"`
}
