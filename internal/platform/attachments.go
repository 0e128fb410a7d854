package platform

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ytget/donation-board/internal/model"
)

// UnknownMIMEType is reported when neither content nor extension identify a file
const UnknownMIMEType = "application/octet-stream"

// LoadAttachment reads the file at path as an attachment candidate
func LoadAttachment(path string) (*model.Attachment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("attachment %s is a directory", path)
	}

	return AttachmentFromReader(filepath.Base(path), f, info.Size())
}

// AttachmentFromReader builds an attachment from r. size may be negative when
// unknown. At most MaxAttachmentSize+1 bytes are read, so an oversized file
// is reported by Size without being loaded; its Content is left empty.
func AttachmentFromReader(name string, r io.Reader, size int64) (*model.Attachment, error) {
	content, err := io.ReadAll(io.LimitReader(r, model.MaxAttachmentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read attachment %s: %w", name, err)
	}

	if read := int64(len(content)); size < read {
		size = read
	}

	att := &model.Attachment{
		Name:     name,
		MIMEType: DetectMIMEType(name, content),
		Size:     size,
	}
	if !att.ExceedsSizeLimit() {
		att.Content = content
	}
	return att, nil
}

// DetectMIMEType sniffs content and falls back to the file extension
func DetectMIMEType(name string, content []byte) string {
	if len(content) > 0 {
		if detected := baseMediaType(mimetype.Detect(content).String()); detected != UnknownMIMEType {
			return detected
		}
	}

	if byExt := baseMediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))); byExt != "" {
		return byExt
	}
	return UnknownMIMEType
}

// baseMediaType strips parameters such as "; charset=utf-8"
func baseMediaType(t string) string {
	base, _, _ := strings.Cut(t, ";")
	return strings.TrimSpace(base)
}
