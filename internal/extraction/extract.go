// Package extraction turns a raw mailbox message into plain resume text.
package extraction

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	gmail "google.golang.org/api/gmail/v1"
)

// Recognized MIME types
const (
	mimeTextPlain = "text/plain"
	mimeTextHTML  = "text/html"
	mimePDF       = "application/pdf"
	mimeWordDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeWordDoc   = "application/msword"
)

// Extract produces the plain-text resume representation of a message: the
// text body followed by, per attachment, either its decoded text or a
// placeholder naming the file when the format is not decodable inline
// (PDF, Word). Extract never fails; any parse problem degrades to an empty
// string so one corrupt email cannot block the rest of the batch.
func Extract(msg *gmail.Message) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}

	var body bodyText
	walkPart(msg.Payload, &body)

	sections := make([]string, 0, 2)
	if text := body.text(); text != "" {
		sections = append(sections, text)
	}
	if attachments := strings.TrimSpace(body.attachments.String()); attachments != "" {
		sections = append(sections, attachments)
	}
	return strings.TrimSpace(strings.Join(sections, "\n"))
}

// bodyText accumulates the walk results. Plain and HTML bodies are kept
// apart so that multipart/alternative messages do not contribute twice.
type bodyText struct {
	plain       strings.Builder
	html        strings.Builder
	attachments strings.Builder
}

func (b *bodyText) text() string {
	if plain := strings.TrimSpace(b.plain.String()); plain != "" {
		return plain
	}
	return strings.TrimSpace(b.html.String())
}

func walkPart(part *gmail.MessagePart, out *bodyText) {
	if part == nil {
		return
	}

	if part.Filename != "" {
		collectAttachment(part, out)
		return
	}

	switch part.MimeType {
	case mimeTextPlain:
		if text := decodeBody(part); text != "" {
			out.plain.WriteString(text)
			out.plain.WriteString("\n")
		}
	case mimeTextHTML:
		if text := htmlToText(decodeBody(part)); text != "" {
			out.html.WriteString(text)
			out.html.WriteString("\n")
		}
	}

	for _, child := range part.Parts {
		walkPart(child, out)
	}
}

func collectAttachment(part *gmail.MessagePart, out *bodyText) {
	switch part.MimeType {
	case mimePDF:
		fmt.Fprintf(&out.attachments, "[PDF ATTACHMENT: %s]\n", part.Filename)
	case mimeWordDocx, mimeWordDoc:
		fmt.Fprintf(&out.attachments, "[WORD DOCUMENT ATTACHMENT: %s]\n", part.Filename)
	case mimeTextPlain:
		if text := decodeBody(part); text != "" {
			out.attachments.WriteString(text)
			out.attachments.WriteString("\n")
		}
	}
}

// decodeBody decodes a part's inline base64url body. Attachments stored
// separately (attachment ID only, no inline data) decode to nothing.
func decodeBody(part *gmail.MessagePart) string {
	if part.Body == nil || part.Body.Data == "" {
		return ""
	}

	data, err := base64.URLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(part.Body.Data)
	}
	if err != nil {
		return ""
	}
	return string(data)
}

// htmlToText strips markup from an HTML body, returning "" when the
// document cannot be parsed
func htmlToText(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text())
}
