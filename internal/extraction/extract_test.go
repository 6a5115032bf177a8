package extraction

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	gmail "google.golang.org/api/gmail/v1"
)

func encode(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestExtract_PlainTextBody(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Body:     &gmail.MessagePartBody{Data: encode("Five years of Go experience.")},
		},
	}

	assert.Equal(t, "Five years of Go experience.", Extract(msg))
}

func TestExtract_MultipartWithAttachments(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*gmail.MessagePart{
				{
					MimeType: "text/plain",
					Body:     &gmail.MessagePartBody{Data: encode("Please find my resume attached.")},
				},
				{
					MimeType: "application/pdf",
					Filename: "resume.pdf",
					Body:     &gmail.MessagePartBody{AttachmentId: "att-1"},
				},
				{
					MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
					Filename: "cover_letter.docx",
					Body:     &gmail.MessagePartBody{AttachmentId: "att-2"},
				},
			},
		},
	}

	text := Extract(msg)
	assert.Contains(t, text, "Please find my resume attached.")
	assert.Contains(t, text, "[PDF ATTACHMENT: resume.pdf]")
	assert.Contains(t, text, "[WORD DOCUMENT ATTACHMENT: cover_letter.docx]")
}

func TestExtract_TextAttachmentDecodedInline(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*gmail.MessagePart{
				{
					MimeType: "text/plain",
					Filename: "resume.txt",
					Body:     &gmail.MessagePartBody{Data: encode("Senior engineer, 8 years.")},
				},
			},
		},
	}

	assert.Contains(t, Extract(msg), "Senior engineer, 8 years.")
}

func TestExtract_HTMLOnlyBody(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "text/html",
			Body: &gmail.MessagePartBody{
				Data: encode("<html><body><p>Hello, I am applying.</p><script>x()</script></body></html>"),
			},
		},
	}

	text := Extract(msg)
	assert.Contains(t, text, "Hello, I am applying.")
	assert.NotContains(t, text, "x()")
}

func TestExtract_AlternativePrefersPlainText(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Parts: []*gmail.MessagePart{
				{
					MimeType: "text/plain",
					Body:     &gmail.MessagePartBody{Data: encode("plain version")},
				},
				{
					MimeType: "text/html",
					Body:     &gmail.MessagePartBody{Data: encode("<p>html version</p>")},
				},
			},
		},
	}

	text := Extract(msg)
	assert.Contains(t, text, "plain version")
	assert.NotContains(t, text, "html version")
}

func TestExtract_NeverFails(t *testing.T) {
	tests := []struct {
		name string
		msg  *gmail.Message
	}{
		{"nil message", nil},
		{"nil payload", &gmail.Message{}},
		{"undecodable body", &gmail.Message{
			Payload: &gmail.MessagePart{
				MimeType: "text/plain",
				Body:     &gmail.MessagePartBody{Data: "!!! not base64 !!!"},
			},
		}},
		{"unknown attachment type", &gmail.Message{
			Payload: &gmail.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					{MimeType: "image/png", Filename: "photo.png", Body: &gmail.MessagePartBody{AttachmentId: "a"}},
				},
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "", Extract(tt.msg))
		})
	}
}
