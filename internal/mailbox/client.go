// Package mailbox wraps the Gmail API for candidate email retrieval.
package mailbox

import (
	"context"
	"fmt"
	"log"
	"net/http"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DefaultPageSize bounds how many candidate messages one listing returns
const DefaultPageSize = 100

// gmailUser addresses the authenticated mailbox in every API call
const gmailUser = "me"

// MessageRef identifies a candidate message returned by a listing
type MessageRef struct {
	ID       string
	ThreadID string
}

// Metadata holds the header fields the pipeline records per message
type Metadata struct {
	From    string
	Subject string
}

// Client performs mailbox operations with an authenticated Gmail service
type Client struct {
	svc      *gmail.Service
	pageSize int64
}

// NewClient builds a client over an authenticated HTTP client handle,
// as produced by the credential manager for a single run.
func NewClient(ctx context.Context, httpClient *http.Client, pageSize int) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail client: %w", err)
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Client{svc: svc, pageSize: int64(pageSize)}, nil
}

// ListCandidates returns unread messages whose subject mentions the job
// title. Gmail subject search is case-sensitive, so the query combines the
// title as given with its lower and upper case variants. An empty result is
// a normal outcome, not an error.
func (c *Client) ListCandidates(ctx context.Context, title string) ([]MessageRef, error) {
	query := buildCandidateQuery(title)
	resp, err := c.svc.Users.Messages.List(gmailUser).
		Q(query).
		MaxResults(c.pageSize).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate messages: %w", err)
	}

	refs := make([]MessageRef, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		refs = append(refs, MessageRef{ID: m.Id, ThreadID: m.ThreadId})
	}
	return refs, nil
}

// FetchContent retrieves the full message body and attachment structure
func (c *Client) FetchContent(ctx context.Context, messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Users.Messages.Get(gmailUser, messageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		if isNotFound(err) {
			return nil, &MessageNotFoundError{MessageID: messageID, Cause: err}
		}
		return nil, fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}
	return msg, nil
}

// FetchMetadata retrieves only the From and Subject headers of a message
func (c *Client) FetchMetadata(ctx context.Context, messageID string) (Metadata, error) {
	msg, err := c.svc.Users.Messages.Get(gmailUser, messageID).
		Format("metadata").
		MetadataHeaders("From", "Subject").
		Context(ctx).
		Do()
	if err != nil {
		if isNotFound(err) {
			return Metadata{}, &MessageNotFoundError{MessageID: messageID, Cause: err}
		}
		return Metadata{}, fmt.Errorf("failed to fetch metadata for message %s: %w", messageID, err)
	}

	var meta Metadata
	if msg.Payload != nil {
		for _, header := range msg.Payload.Headers {
			switch header.Name {
			case "From":
				meta.From = header.Value
			case "Subject":
				meta.Subject = header.Value
			}
		}
	}
	return meta, nil
}

// MarkProcessed clears the UNREAD label. This is best-effort: the caller has
// already durably stored the message's record, and a re-listed message is
// caught by the dedup check rather than by read state.
func (c *Client) MarkProcessed(ctx context.Context, messageID string) error {
	_, err := c.svc.Users.Messages.Modify(gmailUser, messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		log.Printf("[mailbox] failed to mark message %s as read: %v", messageID, err)
		return fmt.Errorf("failed to mark message %s as read: %w", messageID, err)
	}
	return nil
}

// isNotFound reports whether err is a Gmail 404
func isNotFound(err error) bool {
	if apiErr, ok := err.(*googleapi.Error); ok {
		return apiErr.Code == http.StatusNotFound
	}
	return false
}
