package model

import "fmt"

// Attachment constraints
const (
	MaxAttachmentSize = 5 * 1024 * 1024

	MIMETypeJPEG = "image/jpeg"
	MIMETypePNG  = "image/png"
	// MIMETypeJPG is non-standard but some platforms report it for .jpg files
	MIMETypeJPG = "image/jpg"
)

// AllowedMIMETypes is the set of image types accepted for upload
var AllowedMIMETypes = []string{MIMETypeJPEG, MIMETypePNG, MIMETypeJPG}

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// Attachment is a candidate image file picked by the user
type Attachment struct {
	Name     string
	MIMEType string
	Size     int64
	Content  []byte
}

// IsAllowedType reports whether the attachment's MIME type may be uploaded
func (a *Attachment) IsAllowedType() bool {
	for _, t := range AllowedMIMETypes {
		if a.MIMEType == t {
			return true
		}
	}
	return false
}

// ExceedsSizeLimit reports whether the attachment is larger than MaxAttachmentSize
func (a *Attachment) ExceedsSizeLimit() bool {
	return a.Size > MaxAttachmentSize
}

// GetSizeString returns the size in human readable form (e.g. "1.5 MB")
func (a *Attachment) GetSizeString() string {
	return FormatFileSize(a.Size)
}

// FormatFileSize formats file size in bytes to human readable format
func FormatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}
