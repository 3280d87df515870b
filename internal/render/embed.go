// Package render turns catalog data into transport-neutral rich messages.
package render

import "time"

// ColorDefault is the accent color of every catalog message.
const ColorDefault = 0x0099ff

// Field is one name/value row of an embed.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a rich display payload, independent of any chat transport.
type Embed struct {
	Title        string
	Description  string
	Color        int
	Fields       []Field
	ThumbnailURL string
	ImageURL     string
	Footer       string
	Timestamp    time.Time
}

// Response is what a command produces. When Content is set it is the primary
// reply and every embed is sent as its own follow-up; otherwise the first embed
// is the primary reply and the rest follow.
type Response struct {
	Content string
	Embeds  []Embed
}

// Text builds a plain text response.
func Text(content string) Response {
	return Response{Content: content}
}

// Primary returns the payload of the first reply.
func (r Response) Primary() (content string, embeds []Embed) {
	if r.Content != "" || len(r.Embeds) == 0 {
		return r.Content, nil
	}
	return "", r.Embeds[:1]
}

// FollowUps returns the embeds sent after the primary reply, one per message.
func (r Response) FollowUps() []Embed {
	if r.Content != "" {
		return r.Embeds
	}
	if len(r.Embeds) <= 1 {
		return nil
	}
	return r.Embeds[1:]
}
