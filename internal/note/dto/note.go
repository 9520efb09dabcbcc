package dto

// Owner fields are intentionally absent: anything a client sends as
// owner/user is dropped during binding.

type CreateNoteRequest struct {
	Title string   `json:"title" binding:"required,max=200"`
	Body  *string  `json:"body"`
	Tags  []string `json:"tags"`
	// Legacy clients send the body as "content".
	Content *string `json:"content"`
}

func (r *CreateNoteRequest) Text() string {
	if r.Body != nil {
		return *r.Body
	}
	if r.Content != nil {
		return *r.Content
	}
	return ""
}

type UpdateNoteRequest struct {
	Title   *string  `json:"title" binding:"omitempty,max=200"`
	Body    *string  `json:"body"`
	Tags    []string `json:"tags"`
	Content *string  `json:"content"`
}

func (r *UpdateNoteRequest) TextPtr() *string {
	if r.Body != nil {
		return r.Body
	}
	return r.Content
}
