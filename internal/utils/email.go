package utils

import (
	"bytes"
	"mime"
	"strings"
	"time"
)

var headerCleaner = strings.NewReplacer("\r", " ", "\n", " ")

// BuildMessage renders an RFC 5322 message. Header values are stripped of
// line breaks so user input cannot inject headers.
func BuildMessage(from string, to []string, replyTo, subject, body string, isHTML bool) []byte {
	contentType := "text/plain"
	if isHTML {
		contentType = "text/html"
	}

	var b bytes.Buffer
	b.WriteString("From: " + headerCleaner.Replace(from) + "\r\n")
	b.WriteString("To: " + headerCleaner.Replace(strings.Join(to, ", ")) + "\r\n")
	if replyTo != "" {
		b.WriteString("Reply-To: " + headerCleaner.Replace(replyTo) + "\r\n")
	}
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", headerCleaner.Replace(subject)) + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: " + contentType + "; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return b.Bytes()
}
