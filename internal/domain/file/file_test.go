package file_test

import (
	"testing"

	"docvault/internal/domain/file"
)

func TestTypeValidate(t *testing.T) {
	tests := []struct {
		name     string
		fileType file.Type
		expected bool
	}{
		{"Document", file.TypeDocument, true},
		{"Image", file.TypeImage, true},
		{"Video", file.TypeVideo, true},
		{"Audio", file.TypeAudio, true},
		{"Archive", file.TypeArchive, true},
		{"Other", file.TypeOther, true},
		{"Unknown", file.Type("spreadsheet"), false},
		{"Empty", file.Type(""), false},
		{"Case sensitive", file.Type("Document"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fileType.Validate(); got != tt.expected {
				t.Errorf("Validate(%q) = %v, expected %v", tt.fileType, got, tt.expected)
			}
		})
	}
}

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		expected file.Format
	}{
		{"PDF", "report.pdf", "pdf"},
		{"Uppercase extension", "REPORT.PDF", "pdf"},
		{"Word document", "notes.docx", "docx"},
		{"Image", "photo.jpeg", "jpeg"},
		{"Archive", "bundle.tar", "tar"},
		{"Dotted name", "release.v2.zip", "zip"},
		{"Unknown extension", "binary.xyz", file.FormatOther},
		{"No extension", "Makefile", file.FormatOther},
		{"Trailing dot", "weird.", file.FormatOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := file.FormatFromName(tt.fileName); got != tt.expected {
				t.Errorf("FormatFromName(%q) = %q, expected %q", tt.fileName, got, tt.expected)
			}
		})
	}
}
