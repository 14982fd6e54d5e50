package file

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type is the caller-declared coarse file category.
type Type string

const (
	TypeDocument Type = "document"
	TypeImage    Type = "image"
	TypeVideo    Type = "video"
	TypeAudio    Type = "audio"
	TypeArchive  Type = "archive"
	TypeOther    Type = "other"
)

// Validate validates the file type
func (t Type) Validate() bool {
	switch t {
	case TypeDocument, TypeImage, TypeVideo, TypeAudio, TypeArchive, TypeOther:
		return true
	default:
		return false
	}
}

// Format is the extension-derived fine-grained file format.
type Format string

const FormatOther Format = "other"

// extensionFormats maps lowercase file extensions (without the dot) to formats.
var extensionFormats = map[string]Format{
	"pdf":  "pdf",
	"doc":  "doc",
	"docx": "docx",
	"xls":  "xls",
	"xlsx": "xlsx",
	"ppt":  "ppt",
	"pptx": "pptx",
	"txt":  "txt",
	"md":   "md",
	"csv":  "csv",
	"json": "json",
	"xml":  "xml",
	"jpg":  "jpg",
	"jpeg": "jpeg",
	"png":  "png",
	"gif":  "gif",
	"svg":  "svg",
	"webp": "webp",
	"bmp":  "bmp",
	"mp4":  "mp4",
	"mov":  "mov",
	"avi":  "avi",
	"mkv":  "mkv",
	"webm": "webm",
	"mp3":  "mp3",
	"wav":  "wav",
	"flac": "flac",
	"ogg":  "ogg",
	"zip":  "zip",
	"rar":  "rar",
	"tar":  "tar",
	"gz":   "gz",
	"7z":   "7z",
}

// FormatFromName derives the format from the file name's extension.
// Unknown extensions map to FormatOther.
func FormatFromName(name string) Format {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if format, ok := extensionFormats[ext]; ok {
		return format
	}
	return FormatOther
}

// File is the metadata record for one stored file, scoped to a project.
type File struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Name        string    `json:"name"`
	StorageKey  string    `json:"storage_key"`
	Type        Type      `json:"type"`
	Format      Format    `json:"format"`
	SizeBytes   int64     `json:"size_bytes"`
	Description string    `json:"description,omitempty"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	IsShared    bool      `json:"is_shared"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateFileInput struct {
	ProjectID   uuid.UUID
	Name        string
	StorageKey  string
	Type        Type
	Format      Format
	SizeBytes   int64
	Description string
	UploadedBy  uuid.UUID
}

type UpdateFileInput struct {
	Name        *string
	Description *string
	IsShared    *bool
	IsPublic    *bool
}
