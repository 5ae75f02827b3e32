package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := string(BuildMessage("blog@example.com", []string{"a@example.com", "b@example.com"},
		"visitor@example.com", "Hello", "<p>hi</p>", true))

	assert.Contains(t, msg, "From: blog@example.com\r\n")
	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, msg, "Reply-To: visitor@example.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=\"utf-8\"\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>hi</p>\r\n"))
}

func TestBuildMessage_StripsHeaderInjection(t *testing.T) {
	msg := string(BuildMessage("blog@example.com", []string{"a@example.com"},
		"x@example.com\r\nBcc: victim@example.com", "Hi\nBcc: other@example.com", "body", false))

	assert.NotContains(t, msg, "\r\nBcc:")
	assert.NotContains(t, msg, "\nBcc:")
	assert.Contains(t, msg, "Content-Type: text/plain")
}

func TestBuildMessage_EncodesNonASCIISubject(t *testing.T) {
	msg := string(BuildMessage("blog@example.com", []string{"a@example.com"}, "", "Привет", "body", false))

	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.NotContains(t, msg, "Reply-To")
}
