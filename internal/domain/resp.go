package domain

const (
	ContentTypeHTML  = "text/html"
	ContentTypeJSON  = "application/json"
	ContentTypePlain = "text/plain"
)

type Status int

const (
	StatusOK         Status = 200
	StatusBadRequest Status = 400
	StatusNotFound   Status = 404
)

type Response struct {
	Status      Status `msgpack:"status"`
	ContentType string `msgpack:"content_type"`
	Body        []byte `msgpack:"body"`
}

func HTML(body []byte) *Response {
	return &Response{Status: StatusOK, ContentType: ContentTypeHTML, Body: body}
}

func JSON(body []byte) *Response {
	return &Response{Status: StatusOK, ContentType: ContentTypeJSON, Body: body}
}

// BadRequest carries a human-readable message naming the failed constraint.
func BadRequest(msg string) *Response {
	return &Response{Status: StatusBadRequest, ContentType: ContentTypePlain, Body: []byte(msg)}
}

func NotFound() *Response {
	return &Response{Status: StatusNotFound, ContentType: ContentTypePlain}
}
