package models

type Attachment struct {
	Filename string
	Content  []byte
}

type EmailMessage struct {
	To         string
	Subject    string
	Body       string
	Attachment *Attachment
}
